package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticapix/pptx-to-course/internal/report"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		configFile, logLevel = "", ""
		defaultAdvance, workers, writeReport = 0, 0, false
	})
}

func TestLoadConfigLayers(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "pptx2course.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_advance_ms: 3000\nworkers: 2\nlog_level: warn\n"), 0644))

	require.NoError(t, durationCmd.ParseFlags([]string{"--config", path, "--workers", "3", "--report"}))

	cfg, log, err := loadConfig(durationCmd)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.DefaultAdvanceMs, "file value kept when the flag is not set")
	assert.Equal(t, 3, cfg.Workers, "flag overrides the file")
	assert.True(t, cfg.WriteReport)
	assert.Equal(t, "warn", log.GetLevel().String())
}

func TestReportCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "course.yaml")
	require.NoError(t, report.Write(&report.Report{
		Version: report.Version,
		Source:  "course.pptx",
		TotalMs: 3000,
		Slides:  []report.SlideReport{{Number: 1, DurationMs: 3000}},
	}, path))

	rootCmd.SetArgs([]string{"report", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"report", filepath.Join(dir, "missing.yaml")})
	assert.Error(t, rootCmd.Execute())
}
