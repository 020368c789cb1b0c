package utils

import (
	"context"
	"sync/atomic"
	"time"
)

// Keeps track of the time that passes between `Stopwatch.Resume()`
// and `Stopwatch.Pause()` calls.
//
// If at some point while the stopwatch is running, its summary running
// time exceeds the given budget, provided `cancelFunc` is called.
// A non-positive budget means the stopwatch only measures time.
//
// To avoid having dangling goroutines, `Stopwatch.Close()` should be
// called when the stopwatch is no longer needed.
//
// Stopwatch is not thread safe.
type Stopwatch struct {
	totalPassed     time.Duration
	budget          time.Duration
	lastResume      time.Time
	running         bool
	deadlineUpdates chan *time.Duration
	done            chan struct{}
	closed          atomic.Bool
}

func watchDeadline(s *Stopwatch, cancelFunc func()) {
	var timeLeft *time.Duration = nil

	for {
		if timeLeft == nil {
			select {
			case timeLeft = <-s.deadlineUpdates:
			case <-s.done:
				return
			}
			continue
		}

		select {
		case <-time.After(*timeLeft):
			s.Close()
			cancelFunc()
			return
		case timeLeft = <-s.deadlineUpdates:
		case <-s.done:
			return
		}
	}
}

// Hands the new deadline to the watcher, unless it is already gone.
func (s *Stopwatch) updateDeadline(timeLeft *time.Duration) {
	if s.closed.Load() {
		return
	}

	select {
	case s.deadlineUpdates <- timeLeft:
	case <-s.done:
	}
}

// Creates Stopwatch with given budget and cancelFunc.
//
// Created Stopwatch is in PAUSED state.
func NewStopwatch(budget time.Duration, cancelFunc func()) *Stopwatch {
	s := &Stopwatch{
		budget: budget,
		done:   make(chan struct{}),
	}

	if budget <= 0 {
		s.Close()
		return s
	}

	s.deadlineUpdates = make(chan *time.Duration)

	go watchDeadline(s, cancelFunc)

	return s
}

func (s *Stopwatch) Resume() {
	s.lastResume = time.Now()
	s.running = true

	untilDeadline := s.budget - s.totalPassed
	s.updateDeadline(&untilDeadline)
}

func (s *Stopwatch) Pause() {
	if !s.running {
		return
	}

	addDuration := time.Since(s.lastResume)
	s.updateDeadline(nil)
	s.totalPassed += addDuration
	s.running = false
}

// Summary running time, excluding the current run if the
// stopwatch is not paused.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.totalPassed
}

func (s *Stopwatch) Close() {
	if !s.closed.Swap(true) {
		close(s.done)
	}
}

// Creates context and stopwatch bounded together.
//
// When stopwatch summary exceeds `budget`, context is cancelled
// with `cause` cause.
//
// When the parent context is cancelled, stopwatch is closed.
func NewStopwatchContext(parent context.Context, budget time.Duration, cause error) (context.Context, *Stopwatch) {
	ctx, cancel := context.WithCancelCause(parent)
	sw := NewStopwatch(budget, func() {
		cancel(cause)
	})

	go func() {
		<-ctx.Done()
		sw.Close()
	}()

	return ctx, sw
}
