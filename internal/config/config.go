package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAdvanceMs   = 5000
	DefaultNoiseMs     = 10
	DefaultMaxDeltaMs  = 150
	DefaultLogLevel    = "info"
	DefaultReportDir   = "reports"
	DefaultPreviewDPI  = 96
	DefaultPreviewSize = 640
)

type Config struct {
	InputPath string `yaml:"-"`

	// DefaultAdvanceMs is how long a slide without an explicit advance time
	// stays on screen. It also caps the transition duration.
	DefaultAdvanceMs int `yaml:"default_advance_ms"`
	// NoiseThresholdMs is the transition duration below which no clamping
	// happens.
	NoiseThresholdMs int `yaml:"noise_threshold_ms"`
	// MaxDeltaMs is the accepted gap between the computed duration and a
	// rendered video.
	MaxDeltaMs int `yaml:"max_delta_ms"`

	Workers      int    `yaml:"workers"`
	LogLevel     string `yaml:"log_level"`
	ReportDir    string `yaml:"report_dir"`
	WriteReport  bool   `yaml:"write_report"`
	PreviewDPI   int    `yaml:"preview_dpi"`
	PreviewWidth int    `yaml:"preview_width"`
}

// Default returns the calibration the durations were tuned with. Workers is
// left to the caller since it depends on the host.
func Default() *Config {
	return &Config{
		DefaultAdvanceMs: DefaultAdvanceMs,
		NoiseThresholdMs: DefaultNoiseMs,
		MaxDeltaMs:       DefaultMaxDeltaMs,
		Workers:          1,
		LogLevel:         DefaultLogLevel,
		ReportDir:        DefaultReportDir,
		PreviewDPI:       DefaultPreviewDPI,
		PreviewWidth:     DefaultPreviewSize,
	}
}

// Load overlays a YAML file on top of base, or on top of Default when base
// is nil. base is not modified.
func Load(path string, base *Config) (*Config, error) {
	cfg := Default()
	if base != nil {
		copied := *base
		cfg = &copied
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.DefaultAdvanceMs < 0:
		return fmt.Errorf("default_advance_ms must not be negative, got %d", c.DefaultAdvanceMs)
	case c.NoiseThresholdMs < 0:
		return fmt.Errorf("noise_threshold_ms must not be negative, got %d", c.NoiseThresholdMs)
	case c.MaxDeltaMs < 0:
		return fmt.Errorf("max_delta_ms must not be negative, got %d", c.MaxDeltaMs)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.PreviewDPI < 1:
		return fmt.Errorf("preview_dpi must be at least 1, got %d", c.PreviewDPI)
	case c.PreviewWidth < 0:
		return fmt.Errorf("preview_width must not be negative, got %d", c.PreviewWidth)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Logger builds the diagnostics logger for the configured level.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
