//go:build !tinygo

// Package ble scans for BTHome advertisements through BlueZ.
package ble

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/Moshkopp/LuxTempMeter/internal/utils"
)

// Match is a single observation of a node's service data.
type Match struct {
	Address   string
	RSSI      int16
	LocalName string
	Data      []byte
	SeenAt    time.Time
}

type Filter struct {
	// ServiceUUID selects the 16-bit service data UUID to report.
	ServiceUUID uint16
	LocalName   string
}

type Options struct {
	Adapter string // "hci0" by default
	Filter  Filter
	Logger  *slog.Logger
}

// Listener wraps BlueZ scanning with context cancellation.
type Listener struct {
	adapter *bluetooth.Adapter
	opts    Options
	logger  *slog.Logger
}

func NewListener(opts Options) *Listener {
	if opts.Adapter == "" {
		opts.Adapter = "hci0"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Listener{
		adapter: bluetooth.NewAdapter(opts.Adapter),
		opts:    opts,
		logger:  logger,
	}
}

// Run blocks until ctx is canceled or scanning fails. onMatch runs on the
// scanner goroutine.
func (l *Listener) Run(ctx context.Context, onMatch func(Match)) error {
	l.logger.Info("ble: enabling adapter", "adapter", l.opts.Adapter)
	if err := l.adapter.Enable(); err != nil {
		return fmt.Errorf("ble enable (%s): %w", l.opts.Adapter, err)
	}

	go func() {
		<-ctx.Done()
		_ = l.adapter.StopScan()
	}()

	l.logger.Info("ble: scanning started",
		"filter_uuid", "0x"+utils.Hex4(l.opts.Filter.ServiceUUID),
		"filter_name", l.opts.Filter.LocalName,
	)

	// adapter.Scan blocks until StopScan() or error.
	err := l.adapter.Scan(func(a *bluetooth.Adapter, r bluetooth.ScanResult) {
		if l.opts.Filter.LocalName != "" && r.LocalName() != l.opts.Filter.LocalName {
			return
		}
		data, ok := serviceData(r.ServiceData(), l.opts.Filter.ServiceUUID)
		if !ok {
			return
		}
		if onMatch != nil {
			onMatch(Match{
				Address:   r.Address.String(),
				RSSI:      r.RSSI,
				LocalName: r.LocalName(),
				Data:      data,
				SeenAt:    time.Now(),
			})
		}
	})

	// If ctx canceled, treat as clean shutdown.
	if ctx.Err() != nil {
		l.logger.Info("ble: scanning stopped (context canceled)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ble scan: %w", err)
	}

	l.logger.Info("ble: scanning stopped")
	return nil
}

// serviceData returns a copy of the first element for uuid.
func serviceData(elems []bluetooth.ServiceDataElement, uuid uint16) ([]byte, bool) {
	for _, sd := range elems {
		if !sd.UUID.Is16Bit() || sd.UUID.Get16Bit() != uuid {
			continue
		}
		return append([]byte(nil), sd.Data...), true
	}
	return nil, false
}
