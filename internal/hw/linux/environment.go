//go:build linux && !tinygo

package linux

import (
	"fmt"
	"math"

	"github.com/MichaelS11/go-dht"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
)

// pairSampler adapts sensors that measure temperature and humidity in one
// transaction to the separate reads acquisition performs. A humidity read
// triggers the measurement; the temperature read that follows returns the
// value from the same transaction.
type pairSampler struct {
	sample   func() (tempC, humidity float32, err error)
	pendingT float32
	pending  bool
}

func (p *pairSampler) ReadHumidity() float32 {
	t, h, err := p.sample()
	p.pending = true
	if err != nil {
		p.pendingT = nan()
		return nan()
	}
	p.pendingT = t
	return h
}

func (p *pairSampler) ReadTemperature() float32 {
	if p.pending {
		p.pending = false
		return p.pendingT
	}
	t, _, err := p.sample()
	if err != nil {
		return nan()
	}
	return t
}

func nan() float32 { return float32(math.NaN()) }

// DHT22 reads a DHT22 on a GPIO pin through go-dht.
type DHT22 struct {
	pairSampler
	dev *dht.DHT
}

func NewDHT22(pin string) (*DHT22, error) {
	if err := dht.HostInit(); err != nil {
		return nil, fmt.Errorf("dht host init: %w", err)
	}
	dev, err := dht.NewDHT(pin, dht.Celsius, "dht22")
	if err != nil {
		return nil, fmt.Errorf("dht22 on %s: %w", pin, err)
	}
	d := &DHT22{dev: dev}
	d.sample = func() (float32, float32, error) {
		// Single read: the acquisition layer owns the retry policy.
		h, t, err := d.dev.Read()
		if err != nil {
			return 0, 0, err
		}
		return float32(t), float32(h), nil
	}
	return d, nil
}

// BME280 reads temperature and humidity from a Bosch BME280 via periph.
type BME280 struct {
	pairSampler
	dev *bmxx80.Dev
}

func NewBME280(bus i2c.Bus, addr uint16) (*BME280, error) {
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("bmxx80 at 0x%02X: %w", addr, err)
	}
	b := &BME280{dev: dev}
	b.sample = func() (float32, float32, error) {
		var env physic.Env
		if err := b.dev.Sense(&env); err != nil {
			return 0, 0, err
		}
		humidity := float64(env.Humidity) / float64(physic.PercentRH)
		return float32(env.Temperature.Celsius()), float32(humidity), nil
	}
	return b, nil
}

// Halt puts the BME280 to sleep.
func (b *BME280) Halt() error {
	return b.dev.Halt()
}
