//go:build tinygo

// Package pico wires the node to a Raspberry Pi Pico W: BH1750 and the
// power-down path on I2C1, a DHT22 on GP5, the battery divider on ADC0 and
// the CYW43 radio through tinygo.org/x/bluetooth.
package pico

import (
	"machine"

	"tinygo.org/x/bluetooth"
	"tinygo.org/x/drivers/bh1750"
	"tinygo.org/x/drivers/dht"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/hw/btradio"
)

const (
	pinSDA     = machine.GP6
	pinSCL     = machine.GP7
	pinDHT     = machine.GP5
	pinBattery = machine.ADC0
)

// Board holds the configured peripherals for one wake cycle.
type Board struct {
	Devices acquire.Devices
	Radio   *btradio.Radio
}

func NewBoard(cfg config.Node) (*Board, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		SDA:       pinSDA,
		SCL:       pinSCL,
		Frequency: 400 * machine.KHz,
	}); err != nil {
		return nil, err
	}

	machine.InitADC()

	return &Board{
		Devices: acquire.Devices{
			Light:       newLight(bus, cfg.Light.PrimaryAddress),
			Bus:         bus,
			Environment: newEnvironment(pinDHT),
			Battery:     &analog{adc: machine.ADC{Pin: pinBattery}},
		},
		Radio: btradio.New(bluetooth.DefaultAdapter),
	}, nil
}

// light drives the BH1750 through the driver for setup and reads the result
// directly so a missing device surfaces as -1.
type light struct {
	bus *machine.I2C
	dev bh1750.Device
}

func newLight(bus *machine.I2C, addr uint16) *light {
	dev := bh1750.New(bus)
	dev.Address = addr
	return &light{bus: bus, dev: dev}
}

// Begin probes the sensor with a power-on command; the driver itself does
// not report a missing device.
func (l *light) Begin(mode byte) bool {
	if err := l.bus.Tx(l.dev.Address, []byte{0x01}, nil); err != nil {
		return false
	}
	l.dev.Configure()
	return true
}

func (l *light) Configure(mode byte) {
	l.dev.SetMode(mode)
}

func (l *light) ReadLightLevel() float32 {
	var raw [2]byte
	if err := l.bus.Tx(l.dev.Address, nil, raw[:]); err != nil {
		return -1
	}
	// 1.2 counts per lux in the high resolution modes.
	return float32(uint16(raw[0])<<8|uint16(raw[1])) / 1.2
}

type environment struct {
	dev dht.Device
}

func newEnvironment(pin machine.Pin) *environment {
	return &environment{dev: dht.New(pin, dht.DHT22)}
}

func (e *environment) ReadHumidity() float32 {
	h, err := e.dev.HumidityFloat()
	if err != nil {
		return nan()
	}
	return h
}

func (e *environment) ReadTemperature() float32 {
	t, err := e.dev.TemperatureFloat(dht.C)
	if err != nil {
		return nan()
	}
	return t
}

// analog scales the 16-bit ADC reading to millivolts against the 3.3 V
// reference.
type analog struct {
	adc machine.ADC
	cfg acquire.AnalogConfig
}

func (a *analog) Configure(cfg acquire.AnalogConfig) {
	a.cfg = cfg
	a.adc.Configure(machine.ADCConfig{
		Resolution: uint32(cfg.ResolutionBits),
		Reference:  cfg.RangeMilliVolts,
	})
}

func (a *analog) ReadMilliVolts() uint32 {
	return uint32(a.adc.Get()) * a.cfg.RangeMilliVolts / 0xFFFF
}
