package ocr

import (
	"context"
	"time"
)

// Stage is one step of the simulated multi-step progress sequence. The
// definition is immutable; the terminal stage carries Progress 100.
type Stage struct {
	Label    string
	Progress int
	Delay    time.Duration
}

// DefaultStages returns the fixed processing sequence with the stock delays.
// Delays are caller-configurable through config; these are the values the
// demo flow uses.
func DefaultStages() []Stage {
	return []Stage{
		{Label: "Analyzing document structure", Progress: 20, Delay: 800 * time.Millisecond},
		{Label: "Extracting document data", Progress: 50, Delay: 1000 * time.Millisecond},
		{Label: "Generating fingerprint", Progress: 80, Delay: 600 * time.Millisecond},
		{Label: "Finalizing results", Progress: 100, Delay: 0},
	}
}

// Progress is the observable state the sequencer publishes on every
// transition.
type Progress struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// Sequencer drives an ordered stage list one step at a time. It is
// single-threaded and cooperative: each stage's delay must elapse before the
// next stage is entered. Cancelling the context aborts the run immediately;
// no timers outlive Run.
type Sequencer struct {
	observe func(Progress)
}

// NewSequencer builds a sequencer publishing to observe on every transition.
// A nil observer is allowed.
func NewSequencer(observe func(Progress)) *Sequencer {
	if observe == nil {
		observe = func(Progress) {}
	}
	return &Sequencer{observe: observe}
}

// Run advances through stages in order, honoring each stage's delay.
// Returns ctx.Err() when cancelled mid-run.
func (s *Sequencer) Run(ctx context.Context, stages []Stage) error {
	for _, st := range stages {
		s.observe(Progress{Label: st.Label, Percent: st.Progress})

		if st.Delay <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}

		t := time.NewTimer(st.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
