package engine

import "time"

// Verification compares a computed duration with the one of a rendered video.
type Verification struct {
	Computed time.Duration
	Rendered time.Duration
	Delta    time.Duration // computed - rendered
	MaxDelta time.Duration
	Within   bool
}

func Verify(computed, rendered, maxDelta time.Duration) Verification {
	delta := computed - rendered
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	return Verification{
		Computed: computed,
		Rendered: rendered,
		Delta:    delta,
		MaxDelta: maxDelta,
		Within:   abs < maxDelta,
	}
}
