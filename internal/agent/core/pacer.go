package core

import (
	"context"
	"time"
)

// Pacer spaces out consecutive tasks so external endpoints are not hammered.
// It is a pacing policy, not a correctness requirement; tests inject a no-op
// or recording implementation instead of sleeping.
type Pacer interface {
	Pause(ctx context.Context)
}

// NewSleepPacer returns a pacer that blocks for d between tasks, waking early
// when the context is cancelled.
func NewSleepPacer(d time.Duration) Pacer {
	return sleepPacer{d: d}
}

type sleepPacer struct {
	d time.Duration
}

func (p sleepPacer) Pause(ctx context.Context) {
	if p.d <= 0 {
		return
	}
	t := time.NewTimer(p.d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// NopPacer never waits.
type NopPacer struct{}

func (NopPacer) Pause(ctx context.Context) {}
