package lottiecore

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestScrubberUpdateProgressesTowardTarget(t *testing.T) {
	s := NewScrubber(0, 10, 1, ease.Linear)
	f := s.Update(0.5)
	if !approxEqual32(f, 5, 0.01) {
		t.Errorf("Update(0.5) = %v, want ~5", f)
	}
	if s.Done() {
		t.Error("scrubber should not be done halfway through")
	}
}

func TestScrubberDoneAfterDuration(t *testing.T) {
	s := NewScrubber(0, 10, 1, ease.Linear)
	f := s.Update(1.5)
	if !s.Done() {
		t.Error("scrubber should report done once past duration")
	}
	if !approxEqual32(f, 10, 0.01) {
		t.Errorf("final frame = %v, want 10", f)
	}
}

func TestScrubberResetRestartsTween(t *testing.T) {
	s := NewScrubber(0, 10, 1, ease.Linear)
	s.Update(1.5)
	if !s.Done() {
		t.Fatal("precondition: scrubber should be done")
	}
	s.Reset(10, 20, 1, ease.Linear)
	if s.Done() {
		t.Error("Reset should clear Done")
	}
	f := s.Update(0.5)
	if !approxEqual32(f, 15, 0.01) {
		t.Errorf("Update(0.5) after reset = %v, want ~15", f)
	}
}
