// Package sched provides a debounce scheduler: a burst of Schedule calls
// collapses into one callback invocation after the burst goes quiet.
package sched

import (
	"context"
	"sync"
	"time"
)

// Scheduler coalesces repeated Schedule calls into one deferred callback.
// Every Schedule resets the timer; the callback fires once the configured
// delay passes without another call. The zero value is not usable; construct
// with New.
type Scheduler struct {
	mu       sync.Mutex
	delay    time.Duration
	callback func(context.Context)
	timer    *time.Timer
	closed   bool
}

// New creates a Scheduler that invokes callback delay after the last
// Schedule call.
func New(delay time.Duration, callback func(context.Context)) *Scheduler {
	return &Scheduler{
		delay:    delay,
		callback: callback,
	}
}

// Schedule arms or re-arms the timer. Safe for concurrent use.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Cancel drops any pending callback without firing it.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Close cancels any pending callback and rejects further scheduling.
// Used during shutdown so the callback never runs against closed resources.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.callback(context.Background())
}
