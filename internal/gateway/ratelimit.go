package gateway

import (
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by client identity. State
// is process-local: counts reset on restart and are not shared between
// instances. Good enough for a single-process deployment; a shared atomic
// counter store is the upgrade path for horizontal scaling.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	max      int
	interval time.Duration
}

type window struct {
	count int
	start time.Time
}

// evictThreshold bounds the map before stale windows are swept.
const evictThreshold = 4096

func NewLimiter(max int, interval time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		max:      max,
		interval: interval,
	}
}

// Allow records one request for identity and reports whether it fits inside
// the active window. When rejected, retryAfter is the time until the window
// rolls over.
func (l *Limiter) Allow(identity string, now time.Time) (ok bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[identity]
	if w == nil || now.Sub(w.start) >= l.interval {
		if len(l.windows) >= evictThreshold {
			l.evictLocked(now)
		}
		l.windows[identity] = &window{count: 1, start: now}
		return true, 0
	}

	if w.count >= l.max {
		return false, w.start.Add(l.interval).Sub(now)
	}
	w.count++
	return true, 0
}

func (l *Limiter) evictLocked(now time.Time) {
	for id, w := range l.windows {
		if now.Sub(w.start) >= l.interval {
			delete(l.windows, id)
		}
	}
}
