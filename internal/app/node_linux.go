//go:build linux && !tinygo

package app

import (
	"fmt"
	"log/slog"

	"tinygo.org/x/bluetooth"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/hw/btradio"
	"github.com/Moshkopp/LuxTempMeter/internal/hw/linux"
)

func linuxHardware(cfg config.Config, node config.Node, logger *slog.Logger) (NodeHardware, error) {
	bus, err := linux.OpenBus(cfg.I2CBus)
	if err != nil {
		return NodeHardware{}, err
	}

	var env acquire.EnvironmentSensor
	switch cfg.EnvSensor {
	case "bme280":
		env, err = linux.NewBME280(bus, cfg.BME280Address)
	default:
		env, err = linux.NewDHT22(cfg.DHTPin)
	}
	if err != nil {
		bus.Close()
		return NodeHardware{}, fmt.Errorf("environment sensor: %w", err)
	}

	logger.Info("linux hardware ready", "i2c_bus", bus.String(), "env_sensor", cfg.EnvSensor)
	return NodeHardware{
		Devices: acquire.Devices{
			Light:       linux.NewBH1750(bus, node.Light.PrimaryAddress),
			Bus:         bus,
			Environment: env,
			Battery:     &linux.FixedAnalog{MilliVolts: cfg.BatteryMV},
		},
		Radio: btradio.New(bluetooth.NewAdapter(cfg.BLEAdapter)),
		Close: bus.Close,
	}, nil
}
