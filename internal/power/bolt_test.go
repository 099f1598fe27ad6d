//go:build !tinygo

package power

import (
	"path/filepath"
	"testing"
)

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.db")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore() err = %v", err)
	}

	v, err := store.Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if v != 0 {
		t.Errorf("fresh Load() = %d; want 0", v)
	}

	c := NewCounter(store)
	for i := 0; i < 5; i++ {
		if _, err := c.Next(); err != nil {
			t.Fatalf("Next() err = %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}

	// A reopened store behaves like a warm wake: the value is retained.
	store, err = NewBoltStore(path)
	if err != nil {
		t.Fatalf("reopen err = %v", err)
	}
	defer store.Close()

	got, err := NewCounter(store).Next()
	if err != nil {
		t.Fatalf("Next() err = %v", err)
	}
	if got != 6 {
		t.Errorf("Next() after reopen = %d; want 6", got)
	}
}
