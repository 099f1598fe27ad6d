// Package acquire turns raw sensor collaborators into best-effort readings.
// Nothing here returns an error: failures degrade to literal zero values so
// that a cycle always has something to broadcast.
package acquire

import (
	"math"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/config"
)

// LightSensor is the illuminance driver (BH1750 class).
type LightSensor interface {
	Begin(mode byte) bool
	Configure(mode byte)
	ReadLightLevel() float32
}

// EnvironmentSensor is the temperature/humidity driver (DHT22 class). Either
// read may return a non-finite value on failure.
type EnvironmentSensor interface {
	ReadHumidity() float32
	ReadTemperature() float32
}

// AnalogConfig describes how the battery channel is sampled.
type AnalogConfig struct {
	ResolutionBits  uint8
	RangeMilliVolts uint32
}

// AnalogChannel is the battery ADC input.
type AnalogChannel interface {
	Configure(cfg AnalogConfig)
	ReadMilliVolts() uint32
}

// Bus is a raw two-wire bus. It matches both machine.I2C and periph's i2c.Bus.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// Clock provides the blocking waits between bus operations.
type Clock interface {
	Sleep(d time.Duration)
}

// SleepClock blocks the calling goroutine with time.Sleep.
type SleepClock struct{}

func (SleepClock) Sleep(d time.Duration) { time.Sleep(d) }

type Battery struct {
	Voltage float32
}

type Environment struct {
	TemperatureC float32
	HumidityPct  float32
}

type Light struct {
	Lux float32
}

// Devices bundles the collaborators an Acquirer drives.
type Devices struct {
	Light       LightSensor
	Bus         Bus
	Environment EnvironmentSensor
	Battery     AnalogChannel
	Clock       Clock
}

// Acquirer reads every sensor of the node using the policies in cfg.
type Acquirer struct {
	battery config.BatteryConfig
	env     config.EnvironmentConfig
	light   config.LightConfig
	dev     Devices
}

func New(cfg config.Node, dev Devices) *Acquirer {
	if dev.Clock == nil {
		dev.Clock = SleepClock{}
	}
	return &Acquirer{
		battery: cfg.Battery,
		env:     cfg.Environment,
		light:   cfg.Light,
		dev:     dev,
	}
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
