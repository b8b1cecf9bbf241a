package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitForCalls(t *testing.T, calls *atomic.Int32, want int32) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if calls.Load() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d calls, got %d", want, calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerDebouncesBurst(t *testing.T) {
	var calls atomic.Int32
	s := New(20*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})
	defer s.Close()

	for range 10 {
		s.Schedule()
		time.Sleep(2 * time.Millisecond)
	}

	waitForCalls(t, &calls, 1)

	// A quiet period, then a new burst fires again.
	s.Schedule()
	waitForCalls(t, &calls, 2)
}

func TestSchedulerCancel(t *testing.T) {
	var calls atomic.Int32
	s := New(10*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})
	defer s.Close()

	s.Schedule()
	s.Cancel()

	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("cancelled callback still fired %d times", calls.Load())
	}
}

func TestSchedulerCloseStopsScheduling(t *testing.T) {
	var calls atomic.Int32
	s := New(10*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	s.Schedule()
	s.Close()
	s.Schedule()

	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("closed scheduler fired %d times", calls.Load())
	}
}
