package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ticapix/pptx-to-course/internal/config"
	"github.com/ticapix/pptx-to-course/internal/source"
	"github.com/ticapix/pptx-to-course/internal/timing"
)

// SlideResult breaks one slide's duration down into the signals it was
// computed from.
type SlideResult struct {
	Number        int
	Part          string
	AdvanceAfter  time.Duration
	Animation     time.Duration
	RawTransition time.Duration
	Transition    time.Duration // after clamping
	Duration      time.Duration
}

type Result struct {
	Source string
	Slides []SlideResult
	Total  time.Duration
}

// Calculator predicts how long a presentation plays once rendered.
type Calculator struct {
	Config *config.Config
	log    logrus.FieldLogger
}

func NewCalculator(cfg *config.Config, log logrus.FieldLogger) *Calculator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Calculator{Config: cfg, log: log}
}

// Run reads every slide of src and computes the presentation duration.
func (c *Calculator) Run(ctx context.Context, src source.Source) (*Result, error) {
	slides, err := src.Slides()
	if err != nil {
		return nil, err
	}
	res, err := c.Presentation(ctx, slides)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path(), err)
	}
	res.Source = src.Path()
	return res, nil
}

// Presentation evaluates slides concurrently and sums them in slide order.
// A slide with a malformed timing tree fails the whole computation: its
// duration is unknown, so no total can be trusted.
func (c *Calculator) Presentation(ctx context.Context, slides []source.Slide) (*Result, error) {
	results := make([]SlideResult, len(slides))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Config.Workers, 1))
	for i, slide := range slides {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := c.Slide(slide)
			if err != nil {
				return fmt.Errorf("slide %d (%s): %w", slide.Number, slide.Part, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Slides: results}
	for _, r := range results {
		res.Total += r.Duration
		c.log.WithField("slide", r.Number).Infof("Slide %d total duration: %d ms (aat: %d ms, ani: %d ms, trn: %d ms)",
			r.Number, r.Duration.Milliseconds(), r.AdvanceAfter.Milliseconds(), r.Animation.Milliseconds(), r.Transition.Milliseconds())
	}
	c.log.Infof("Total presentation duration: %s", res.Total)
	return res, nil
}

// Slide computes max(advance-after, animations) + clamped transition.
func (c *Calculator) Slide(slide source.Slide) (SlideResult, error) {
	animation, err := c.AnimationDuration(slide)
	if err != nil {
		return SlideResult{}, err
	}
	advance := AdvanceAfterTime(slide.Transitions, c.Config.DefaultAdvanceMs)
	raw := TransitionDuration(slide.Transitions)
	transition := ClampTransition(raw, c.Config.DefaultAdvanceMs, c.Config.NoiseThresholdMs)

	return SlideResult{
		Number:        slide.Number,
		Part:          slide.Part,
		AdvanceAfter:  millis(advance),
		Animation:     millis(animation),
		RawTransition: millis(raw),
		Transition:    millis(transition),
		Duration:      millis(max(advance, animation) + transition),
	}, nil
}

// AnimationDuration is 0 for a slide without a timing section.
func (c *Calculator) AnimationDuration(slide source.Slide) (int, error) {
	root, err := timing.Build(slide.Timing)
	if err != nil {
		return 0, err
	}
	ev := timing.NewEvaluator(c.log.WithField("slide", slide.Number))
	return ev.AnimationDuration(root)
}

// TransitionDuration returns the first declared transition duration, or 0.
func TransitionDuration(transitions []source.TransitionElement) int {
	for _, tr := range transitions {
		if tr.Dur != nil {
			return source.AtoiOrZero(*tr.Dur)
		}
	}
	return 0
}

// AdvanceAfterTime returns the first declared advance-after time, or
// defaultMs when no transition declares one.
func AdvanceAfterTime(transitions []source.TransitionElement, defaultMs int) int {
	for _, tr := range transitions {
		if tr.AdvTm != nil {
			return source.AtoiOrZero(*tr.AdvTm)
		}
	}
	return defaultMs
}

// ClampTransition caps a transition longer than the noise threshold at the
// default advance time.
func ClampTransition(rawMs, defaultAdvanceMs, noiseMs int) int {
	if rawMs > noiseMs {
		return min(rawMs, defaultAdvanceMs)
	}
	return rawMs
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
