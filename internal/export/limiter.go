package export

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrBusy is returned when every render slot stays occupied for the whole
// wait. Clients should retry after a short delay.
var ErrBusy = errors.New("report generation busy, too many concurrent exports")

const (
	DefaultMaxConcurrent = 2
	DefaultMaxWait       = 10 * time.Second
)

// Limiter bounds how many reports are rendered at once. PDF and XLSX
// documents are built fully in memory, so unbounded parallel downloads
// could exhaust the heap.
type Limiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

// NewLimiter allows at most maxConcurrent renders. Callers that cannot get a
// slot within maxWait receive ErrBusy. Non-positive values use the defaults.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &Limiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must Release it when done.
func (l *Limiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrBusy
	}
}

// Release frees a slot taken by Acquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of renders in progress.
func (l *Limiter) Active() int {
	return int(l.active.Load())
}

// Capacity returns the maximum number of concurrent renders.
func (l *Limiter) Capacity() int {
	return cap(l.slots)
}
