package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ticapix/pptx-to-course/internal/engine"
	"github.com/ticapix/pptx-to-course/internal/system"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.pptx> <video>",
	Short: "Compare the computed duration with a rendered video",
	Long: `Compute the presentation duration and compare it with the length of a video
exported from the same file, as reported by ffprobe. The command fails when the
gap reaches max_delta_ms.`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.InputPath = args[0]

	res, err := computeDuration(cmd, cfg, log)
	if err != nil {
		return err
	}
	rendered, err := system.ProbeMediaDuration(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	v := engine.Verify(res.Total, rendered, time.Duration(cfg.MaxDeltaMs)*time.Millisecond)
	log.WithField("delta_ms", v.Delta.Milliseconds()).Debug("verification done")

	fmt.Printf("%s Computed: %s\n", color.CyanString("[*]"), v.Computed)
	fmt.Printf("%s Rendered: %s\n", color.CyanString("[*]"), v.Rendered)
	if !v.Within {
		fmt.Printf("%s Delta %s exceeds %s\n", color.RedString("[-]"), v.Delta, v.MaxDelta)
		return fmt.Errorf("computed duration is off by %s", v.Delta)
	}
	fmt.Printf("%s Delta %s within %s\n", color.GreenString("[+]"), v.Delta, v.MaxDelta)
	return nil
}
