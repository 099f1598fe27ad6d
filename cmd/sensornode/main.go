//go:build tinygo

package main

import (
	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/cycle"
	"github.com/Moshkopp/LuxTempMeter/internal/hw/pico"
	"github.com/Moshkopp/LuxTempMeter/internal/power"
)

func main() {
	cfg := config.DefaultNode()
	obs := newObserver()

	board, err := pico.NewBoard(cfg)
	if err != nil {
		// Nothing to measure with; try again after the next reset.
		obs.Suspend(cfg.SleepDuration, err)
		pico.WatchdogSuspender{}.Suspend(cfg.SleepDuration)
	}

	ctrl := cycle.NewController(cfg, cycle.Options{
		Sensors:   acquire.New(cfg, board.Devices),
		Radio:     board.Radio,
		Counter:   power.NewCounter(pico.ScratchStore{}),
		Suspender: pico.WatchdogSuspender{},
		Observer:  obs,
	})
	ctrl.RunCycle()
}
