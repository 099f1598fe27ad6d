//go:build !tinygo

package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/cycle"
	"github.com/Moshkopp/LuxTempMeter/internal/hw/sim"
	"github.com/Moshkopp/LuxTempMeter/internal/logging"
	"github.com/Moshkopp/LuxTempMeter/internal/power"
)

// NodeHardware is the set of collaborators a host node runs on.
type NodeHardware struct {
	Devices acquire.Devices
	Radio   cycle.Radio
	Close   func() error
}

func simHardware(cfg config.Config, node config.Node, logger *slog.Logger) (NodeHardware, error) {
	seed := uint64(time.Now().UnixNano())
	return NodeHardware{
		Devices: acquire.Devices{
			Light:       sim.NewLight(seed),
			Bus:         &sim.Bus{},
			Environment: sim.NewEnvironment(seed),
			Battery:     sim.NewAnalog(cfg.BatteryMV, seed),
		},
		Radio: sim.NewRadio(logger),
		Close: func() error { return nil },
	}, nil
}

func openHardware(cfg config.Config, node config.Node, logger *slog.Logger) (NodeHardware, error) {
	switch cfg.NodeHardware {
	case "sim":
		return simHardware(cfg, node, logger)
	case "linux":
		return linuxHardware(cfg, node, logger)
	default:
		return NodeHardware{}, fmt.Errorf("unknown node hardware %q", cfg.NodeHardware)
	}
}

// RunNode runs wake cycles on host hardware. The counter persists in a bbolt
// file. With SimCycles 0 it runs until ctx is canceled.
func RunNode(ctx context.Context, cfg config.Config) error {
	node := config.DefaultNode()
	logger := slog.Default()

	hw, err := openHardware(cfg, node, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := hw.Close(); err != nil {
			logger.Warn("close hardware", "error", err)
		}
	}()

	store, err := power.NewBoltStore(cfg.CounterPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctrl := cycle.NewController(node, cycle.Options{
		Sensors: acquire.New(node, hw.Devices),
		Radio:   hw.Radio,
		Counter: power.NewCounter(store),
		Suspender: sim.Suspender{
			Override: cfg.SimSleep,
			Sleep:    func(d time.Duration) { sleepCtx(ctx, d) },
		},
		Observer: logging.NewCycleObserver(logger),
	})

	slog.Info("node starting",
		"hardware", cfg.NodeHardware,
		"counter_path", cfg.CounterPath,
		"cycles", cfg.SimCycles,
	)

	for i := 0; cfg.SimCycles == 0 || i < cfg.SimCycles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ctrl.RunCycle(); err != nil {
			// The cycle already suspended; the next wake tries again.
			logger.Debug("cycle ended with error", "cycle", i, "error", err)
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
