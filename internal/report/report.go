package report

import (
	"github.com/ticapix/pptx-to-course/internal/engine"
)

const Version = "1.0"

// Report is the persisted breakdown of a duration computation. All values are
// milliseconds so the file diffs cleanly between runs.
type Report struct {
	Version          string        `yaml:"version"`
	Source           string        `yaml:"source"`
	DefaultAdvanceMs int           `yaml:"default_advance_ms"`
	TotalMs          int64         `yaml:"total_ms"`
	Slides           []SlideReport `yaml:"slides"`
}

// SlideReport represents a single slide and the signals its duration came from
type SlideReport struct {
	Number         int    `yaml:"number"`
	Part           string `yaml:"part"`
	AdvanceAfterMs int64  `yaml:"advance_after_ms"`
	AnimationMs    int64  `yaml:"animation_ms"`
	TransitionMs   int64  `yaml:"transition_ms"`
	DurationMs     int64  `yaml:"duration_ms"`
}

// FromResult converts a calculator result into its report form.
func FromResult(res *engine.Result, defaultAdvanceMs int) *Report {
	r := &Report{
		Version:          Version,
		Source:           res.Source,
		DefaultAdvanceMs: defaultAdvanceMs,
		TotalMs:          res.Total.Milliseconds(),
		Slides:           make([]SlideReport, 0, len(res.Slides)),
	}
	for _, s := range res.Slides {
		r.Slides = append(r.Slides, SlideReport{
			Number:         s.Number,
			Part:           s.Part,
			AdvanceAfterMs: s.AdvanceAfter.Milliseconds(),
			AnimationMs:    s.Animation.Milliseconds(),
			TransitionMs:   s.Transition.Milliseconds(),
			DurationMs:     s.Duration.Milliseconds(),
		})
	}
	return r
}
