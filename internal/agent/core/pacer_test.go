package core

import (
	"context"
	"testing"
	"time"
)

func TestSleepPacerZeroDurationReturnsImmediately(t *testing.T) {
	p := NewSleepPacer(0)
	done := make(chan struct{})
	go func() {
		p.Pause(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("zero-duration pacer blocked")
	}
}

func TestSleepPacerWakesOnCancel(t *testing.T) {
	p := NewSleepPacer(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Pause(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pacer did not wake on context cancellation")
	}
}
