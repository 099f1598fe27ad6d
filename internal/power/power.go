// Package power is the boundary between a wake cycle and the platform's
// low-power state: the one persistent counter byte and the suspend call.
package power

import (
	"fmt"
	"time"
)

// CounterStore is memory that survives suspension and is only cleared by a
// cold boot.
type CounterStore interface {
	Load() (uint8, error)
	Store(v uint8) error
}

// Suspender puts the platform to sleep for d. On hardware it does not return:
// the next cycle starts from the program entry point.
type Suspender interface {
	Suspend(d time.Duration)
}

// Counter is the sequence id shared by consecutive wake cycles.
type Counter struct {
	store CounterStore
}

func NewCounter(store CounterStore) *Counter {
	return &Counter{store: store}
}

// Next increments the stored value, wrapping at 256, and returns it. The new
// value is persisted before it is handed out so it is never reused.
func (c *Counter) Next() (uint8, error) {
	v, err := c.store.Load()
	if err != nil {
		return 0, fmt.Errorf("load counter: %w", err)
	}
	v++
	if err := c.store.Store(v); err != nil {
		return 0, fmt.Errorf("store counter: %w", err)
	}
	return v, nil
}

// MemoryStore keeps the counter in process memory.
type MemoryStore struct {
	v uint8
}

func (m *MemoryStore) Load() (uint8, error) { return m.v, nil }

func (m *MemoryStore) Store(v uint8) error {
	m.v = v
	return nil
}
