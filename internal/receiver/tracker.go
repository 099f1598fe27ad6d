// Package receiver turns scanned BTHome advertisements into telemetry.
package receiver

import (
	"sync"
	"time"
)

// Status classifies one observed packet id.
type Status struct {
	First     bool
	Duplicate bool
	// Missed is the number of packet ids skipped since the last accepted
	// packet from the same address.
	Missed int
}

type lastSeen struct {
	pid uint8
	at  time.Time
}

// Tracker remembers the last packet id per address. A node repeats the same
// payload many times during one burst; those repeats are duplicates. After
// the window the same id is treated as a new broadcast (counter reset or a
// full wrap).
type Tracker struct {
	window time.Duration
	mu     sync.Mutex
	last   map[string]lastSeen
}

func NewTracker(window time.Duration) *Tracker {
	return &Tracker{window: window, last: make(map[string]lastSeen)}
}

func (t *Tracker) Observe(addr string, pid uint8, now time.Time) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, ok := t.last[addr]
	if !ok {
		t.last[addr] = lastSeen{pid: pid, at: now}
		return Status{First: true}
	}
	if prev.pid == pid && now.Sub(prev.at) < t.window {
		return Status{Duplicate: true}
	}
	t.last[addr] = lastSeen{pid: pid, at: now}
	if prev.pid == pid {
		return Status{}
	}
	return Status{Missed: int(pid - prev.pid - 1)}
}
