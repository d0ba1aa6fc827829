package server

import (
	"sync"
	"time"
)

// windowLimiter is a fixed-window counter: up to limit requests per window,
// counted globally across all clients. The window resets wholesale once it
// elapses rather than sliding.
type windowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	start  time.Time
	count  int
	now    func() time.Time
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	return &windowLimiter{limit: limit, window: window, now: time.Now}
}

// Allow reports whether one more request fits in the current window and
// consumes a slot if it does.
func (l *windowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.now()
	if l.start.IsZero() || t.Sub(l.start) >= l.window {
		l.start = t
		l.count = 0
	}
	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// intervalLimiter admits at most one request per interval. Used for the
// active-user nudge endpoint so a chatty client cannot swing the gauge.
type intervalLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func newIntervalLimiter(interval time.Duration) *intervalLimiter {
	return &intervalLimiter{interval: interval, now: time.Now}
}

func (l *intervalLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.now()
	if !l.last.IsZero() && t.Sub(l.last) < l.interval {
		return false
	}
	l.last = t
	return true
}
