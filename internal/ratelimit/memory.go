package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryRateLimiter keeps one fixed window per key in process memory.
// Counts are not shared between replicas; use RedisRateLimiter for that.
type MemoryRateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewMemoryRateLimiter allows limit requests per key per window. Expired
// windows are swept every window interval until Close is called.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return newMemoryRateLimiter(limit, window, time.Now, true)
}

func newMemoryRateLimiter(limit int, win time.Duration, now func() time.Time, sweep bool) *MemoryRateLimiter {
	l := &MemoryRateLimiter{
		limit:   limit,
		window:  win,
		now:     now,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if sweep {
		go l.sweepLoop()
	} else {
		close(l.done)
	}

	return l
}

// Allow counts the request against key's current window
func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &window{start: now, count: 1}
		return true, nil
	}

	if w.count >= l.limit {
		return false, nil
	}

	w.count++
	return true, nil
}

// Len returns the number of tracked keys
func (l *MemoryRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *MemoryRateLimiter) sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}

func (l *MemoryRateLimiter) sweepLoop() {
	defer close(l.done)

	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// Close stops the sweeper; it is safe to call more than once
func (l *MemoryRateLimiter) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
	return nil
}
