package lottiecore

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scrubber is a host convenience for smoothly previewing between two
// frames of a Timeline, e.g. scrubbing a UI slider without snapping.
// It carries no playback state of its own beyond the current eased
// frame; callers still project through Timeline.ValueAtFloat32/Vec2 to
// read properties. Grounded on the teacher's gween-backed TweenGroup
// convention (animation.go), generalized from node fields to a single
// frame-time value.
type Scrubber struct {
	tween *gween.Tween
	done  bool
}

// NewScrubber builds a Scrubber easing from frame fromFrame to toFrame
// over duration seconds using fn.
func NewScrubber(fromFrame, toFrame, duration float32, fn ease.TweenFunc) *Scrubber {
	return &Scrubber{tween: gween.New(fromFrame, toFrame, duration, fn)}
}

// Update advances the scrubber by dt seconds and returns the current
// frame. Once the tween completes, Update keeps returning the final
// frame and Done reports true.
func (s *Scrubber) Update(dt float32) float32 {
	f, finished := s.tween.Update(dt)
	if finished {
		s.done = true
	}
	return f
}

// Done reports whether the scrubber's tween has completed.
func (s *Scrubber) Done() bool { return s.done }

// Reset restarts the scrubber toward a new target frame from its
// current position.
func (s *Scrubber) Reset(fromFrame, toFrame, duration float32, fn ease.TweenFunc) {
	s.tween = gween.New(fromFrame, toFrame, duration, fn)
	s.done = false
}
