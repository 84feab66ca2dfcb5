package server

import (
	"context"
	"runtime"
	"time"
)

// Concurrency bounds for batch conversion.
const (
	// MinConcurrent ensures at least one batch can run.
	MinConcurrent = 1

	// MaxConcurrent caps automatic sizing; every batch holds its uploads
	// and archive in memory.
	MaxConcurrent = 8
)

// ResolveConcurrency determines how many batches may convert at once.
// Priority: explicit value > GOMAXPROCS-based calculation.
func ResolveConcurrency(n int) int {
	if n > 0 {
		return n
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	return min(max(runtime.GOMAXPROCS(0), MinConcurrent), MaxConcurrent)
}

// limiter is a counting semaphore over in-flight batches.
type limiter struct {
	slots chan struct{}
}

func newLimiter(n int) *limiter {
	if n < MinConcurrent {
		n = MinConcurrent
	}
	return &limiter{slots: make(chan struct{}, n)}
}

// acquireResult reports how a wait for a slot ended.
type acquireResult int

const (
	acquired acquireResult = iota
	busy                   // queue wait elapsed
	abandoned              // request context ended first
)

// acquire waits for a free slot for at most wait.
func (l *limiter) acquire(ctx context.Context, wait time.Duration) acquireResult {
	select {
	case l.slots <- struct{}{}:
		return acquired
	default:
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return acquired
	case <-timer.C:
		return busy
	case <-ctx.Done():
		return abandoned
	}
}

func (l *limiter) release() { <-l.slots }

// size returns the limiter capacity.
func (l *limiter) size() int { return cap(l.slots) }

// inFlight returns the number of held slots.
func (l *limiter) inFlight() int { return len(l.slots) }
