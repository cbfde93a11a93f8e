package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

var presentationExtensions = []string{".pptx", ".pptm", ".ppsx"}

// DefaultWorkers returns the number of logical CPUs.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// FindLatestPresentation returns the most recently modified presentation in dir.
func FindLatestPresentation(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !isPresentation(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no presentation found in %s", dir)
	}

	return latestFile, nil
}

func isPresentation(name string) bool {
	lower := strings.ToLower(name)
	// Office lock files look like ~$deck.pptx.
	if strings.HasPrefix(lower, "~$") {
		return false
	}
	for _, ext := range presentationExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ProbeMediaDuration reads a media file's container duration with ffprobe.
func ProbeMediaDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return ParseProbeSeconds(string(out))
}

// ParseProbeSeconds converts ffprobe's "12.345000" output to a duration,
// rounded to the millisecond.
func ParseProbeSeconds(out string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", strings.TrimSpace(out), err)
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Millisecond), nil
}
