//go:build !tinygo

package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
)

// captureHandler records log records for assertion in tests.
type captureHandler struct {
	mu      sync.Mutex
	records []map[string]slog.Value
	levels  []slog.Level
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := make(map[string]slog.Value)
	m["msg"] = slog.StringValue(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value
		return true
	})
	h.records = append(h.records, m)
	h.levels = append(h.levels, r.Level)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(name string) slog.Handler { return h }

func TestCycleObserver_Broadcast(t *testing.T) {
	h := &captureHandler{}
	o := NewCycleObserver(slog.New(h))

	o.Broadcast(7, bthome.Encode(7, 123.456, 3.987, 21.34, 55.6))

	if len(h.records) != 1 {
		t.Fatalf("records = %d; want 1", len(h.records))
	}
	rec := h.records[0]
	if got := rec["payload"].String(); got != "400007053A30000C930F02560803B815" {
		t.Errorf("payload = %s; want 400007053A30000C930F02560803B815", got)
	}
	if got := rec["packet_id"].Uint64(); got != 7 {
		t.Errorf("packet_id = %d; want 7", got)
	}
}

func TestCycleObserver_levels(t *testing.T) {
	h := &captureHandler{}
	o := NewCycleObserver(slog.New(h))

	o.Light(false, acquire.Light{})
	o.Suspend(time.Minute, errors.New("radio init: busy"))
	o.Suspend(time.Minute, nil)

	want := []slog.Level{slog.LevelWarn, slog.LevelWarn, slog.LevelInfo}
	if len(h.levels) != len(want) {
		t.Fatalf("levels = %v; want %v", h.levels, want)
	}
	for i := range want {
		if h.levels[i] != want[i] {
			t.Errorf("levels[%d] = %v; want %v", i, h.levels[i], want[i])
		}
	}
}

func TestNew(t *testing.T) {
	cfg := config.Config{AppEnv: "prod", LogLevel: slog.LevelWarn}
	logger := New(cfg, "1.2.3", "test")
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}
