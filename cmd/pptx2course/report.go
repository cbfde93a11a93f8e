package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ticapix/pptx-to-course/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [report.yaml]",
	Short: "Show a saved duration report",
	Long:  "Print a report written by 'duration --report'. Without a file, the latest report in report_dir is shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = report.FindLatest(cfg.ReportDir)
		if err != nil {
			return err
		}
	}

	r, err := report.Read(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (default advance %d ms)\n", color.CyanString("[*]"), r.Source, r.DefaultAdvanceMs)
	fmt.Printf("%-6s %10s %10s %10s %10s\n", "slide", "advance", "animation", "transition", "duration")
	for _, s := range r.Slides {
		fmt.Printf("%-6d %10s %10s %10s %10s\n", s.Number,
			ms(s.AdvanceAfterMs), ms(s.AnimationMs), ms(s.TransitionMs), ms(s.DurationMs))
	}
	fmt.Printf("%s Total: %s\n", color.GreenString("[+++]"), ms(r.TotalMs))
	return nil
}

func ms(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
