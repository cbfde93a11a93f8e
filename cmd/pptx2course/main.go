package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ticapix/pptx-to-course/internal/config"
	"github.com/ticapix/pptx-to-course/internal/system"
)

const inputDir = "input/pptx"

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pptx2course",
	Short: "Predict how long a PowerPoint deck plays once rendered to video",
	Long: `pptx2course reads the timing information of a .pptx file (advance times,
transitions and animation trees) and computes how long each slide, and the
whole presentation, stays on screen when exported to video.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(durationCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("[-]"), err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, host workers, the --config file and the
// flags the user actually set, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg := config.Default()
	cfg.Workers = system.DefaultWorkers()

	if configFile != "" {
		loaded, err := config.Load(configFile, cfg)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	// Only duration defines these; Changed is false for unknown flags.
	if flags.Changed("default-advance") {
		cfg.DefaultAdvanceMs = defaultAdvance
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("report") {
		cfg.WriteReport = writeReport
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, cfg.Logger(), nil
}
