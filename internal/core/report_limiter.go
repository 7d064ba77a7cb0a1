package core

// report_limiter.go bounds how many reports are built at once.
//
// Every report fans out into one request per upstream page plus the
// checkout-pages lookup, so a handful of simultaneous dashboard loads can
// multiply into a large burst against the Nova API. The limiter is a
// semaphore: a build waits up to maxWait for a slot and then fails with
// ErrTooManyReports. Drain blocks until in-flight builds finish, for
// graceful shutdown.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyReports is returned when no build slot frees up in time.
var ErrTooManyReports = errors.New("too many reports in progress")

// Limiter defaults.
const (
	DefaultMaxConcurrentReports = 4
	DefaultMaxReportWait        = 30 * time.Second
)

// ReportLimiter caps concurrent report builds.
type ReportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewReportLimiter allows maxConcurrent builds at once. Non-positive
// arguments take the defaults.
func NewReportLimiter(maxConcurrent int, maxWait time.Duration) *ReportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentReports
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxReportWait
	}
	return &ReportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting at most maxWait. Cancellation of ctx is
// returned as ctx.Err(). Every successful Acquire needs one Release.
func (l *ReportLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyReports
	}
}

// Release frees a slot taken by Acquire.
func (l *ReportLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// LimiterStatus is a snapshot of the limiter.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status reports current usage.
func (l *ReportLimiter) Status() LimiterStatus {
	return LimiterStatus{
		Active:        int(l.active.Load()),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}

// Drain waits until no build is running or ctx is done.
func (l *ReportLimiter) Drain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.active.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
