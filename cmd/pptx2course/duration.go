package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ticapix/pptx-to-course/internal/config"
	"github.com/ticapix/pptx-to-course/internal/engine"
	"github.com/ticapix/pptx-to-course/internal/report"
	"github.com/ticapix/pptx-to-course/internal/source"
	"github.com/ticapix/pptx-to-course/internal/system"
)

var (
	defaultAdvance int
	workers        int
	writeReport    bool
)

var durationCmd = &cobra.Command{
	Use:   "duration [file.pptx]",
	Short: "Compute the playback duration of a presentation",
	Long: `Compute how long every slide stays on screen and the total presentation
duration. Without a file, the most recent presentation in input/pptx is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDuration,
}

func init() {
	durationCmd.Flags().IntVar(&defaultAdvance, "default-advance", config.DefaultAdvanceMs, "Advance time in ms for slides that declare none; also caps transitions")
	durationCmd.Flags().IntVar(&workers, "workers", 0, "Slides evaluated concurrently (default: logical CPUs)")
	durationCmd.Flags().BoolVar(&writeReport, "report", false, "Write a YAML report to the report directory")
}

func runDuration(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cfg.InputPath = args[0]
	} else {
		latest, err := system.FindLatestPresentation(inputDir)
		if err != nil {
			return fmt.Errorf("%w; put a presentation in %s/", err, inputDir)
		}
		cfg.InputPath = latest
		fmt.Printf("%s Selected file: %s\n", color.CyanString("[*]"), cfg.InputPath)
	}

	res, err := computeDuration(cmd, cfg, log)
	if err != nil {
		return err
	}
	printResult(res)

	if cfg.WriteReport {
		path := report.GeneratePath(cfg.ReportDir, cfg.InputPath, time.Now())
		if err := report.Write(report.FromResult(res, cfg.DefaultAdvanceMs), path); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("%s Report written: %s\n", color.GreenString("[+]"), path)
	}
	return nil
}

func computeDuration(cmd *cobra.Command, cfg *config.Config, log *logrus.Logger) (*engine.Result, error) {
	src, err := source.NewPPTXSource(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	log.Debugf("%s: %d slides", src.Path(), src.SlideCount())
	return engine.NewCalculator(cfg, log).Run(cmd.Context(), src)
}

func printResult(res *engine.Result) {
	fmt.Printf("%-6s %10s %10s %10s %10s\n", "slide", "advance", "animation", "transition", "duration")
	for _, s := range res.Slides {
		fmt.Printf("%-6d %10s %10s %10s %10s\n", s.Number, s.AdvanceAfter, s.Animation, s.Transition, s.Duration)
	}
	fmt.Printf("%s Total: %s (%d ms)\n", color.GreenString("[+++]"), res.Total, res.Total.Milliseconds())
}
