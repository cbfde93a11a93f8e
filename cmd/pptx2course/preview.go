package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ticapix/pptx-to-course/internal/source"
)

var (
	previewDir   string
	previewSlide int
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.pptx>",
	Short: "Render slide thumbnails",
	Long:  "Render PNG thumbnails of the slides, to match computed durations against what is on screen.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewDir, "out", "o", "preview", "Output directory")
	previewCmd.Flags().IntVar(&previewSlide, "slide", 0, "Render only this slide (1-based, 0 for all)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := source.NewFitzPreview(args[0])
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := os.MkdirAll(previewDir, 0755); err != nil {
		return err
	}

	first, last := 0, doc.PageCount()
	if previewSlide > 0 {
		first, last = previewSlide-1, previewSlide
	}
	for i := first; i < last; i++ {
		img, err := doc.Render(i, cfg.PreviewDPI, cfg.PreviewWidth)
		if err != nil {
			return err
		}
		out := filepath.Join(previewDir, fmt.Sprintf("slide%03d.png", i+1))
		if err := source.WritePNG(out, img); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		log.WithField("slide", i+1).Debugf("wrote %s", out)
	}
	fmt.Printf("%s %d thumbnails in %s\n", color.GreenString("[+]"), last-first, previewDir)
	return nil
}
