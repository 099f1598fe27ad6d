package acquire

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/config"
)

var nan = float32(math.NaN())

// MockClock records requested delays instead of sleeping.
type MockClock struct {
	sleeps []time.Duration
}

func (c *MockClock) Sleep(d time.Duration) { c.sleeps = append(c.sleeps, d) }

func (c *MockClock) total() time.Duration {
	var sum time.Duration
	for _, d := range c.sleeps {
		sum += d
	}
	return sum
}

type MockLight struct {
	beginOK   bool
	lux       float32
	beginMode byte
	confMode  byte
	reads     int
}

func (l *MockLight) Begin(mode byte) bool { l.beginMode = mode; return l.beginOK }
func (l *MockLight) Configure(mode byte)  { l.confMode = mode }
func (l *MockLight) ReadLightLevel() float32 {
	l.reads++
	return l.lux
}

type busWrite struct {
	addr uint16
	data []byte
}

// MockBus logs writes and fails for the addresses listed in nack.
type MockBus struct {
	nack   map[uint16]bool
	writes []busWrite
}

func (b *MockBus) Tx(addr uint16, w, r []byte) error {
	cp := make([]byte, len(w))
	copy(cp, w)
	b.writes = append(b.writes, busWrite{addr: addr, data: cp})
	if b.nack[addr] {
		return errors.New("nack")
	}
	return nil
}

type envSample struct{ t, h float32 }

// MockEnv replays samples, repeating the last one once exhausted.
type MockEnv struct {
	samples    []envSample
	humReads   int
	tempReads  int
	currentIdx int
}

func (e *MockEnv) ReadHumidity() float32 {
	e.humReads++
	e.currentIdx = e.humReads - 1
	if e.currentIdx >= len(e.samples) {
		e.currentIdx = len(e.samples) - 1
	}
	return e.samples[e.currentIdx].h
}

func (e *MockEnv) ReadTemperature() float32 {
	e.tempReads++
	return e.samples[e.currentIdx].t
}

type MockADC struct {
	cfg        AnalogConfig
	configured int
	values     []uint32
	reads      int
}

func (a *MockADC) Configure(cfg AnalogConfig) { a.cfg = cfg; a.configured++ }
func (a *MockADC) ReadMilliVolts() uint32 {
	v := a.values[a.reads%len(a.values)]
	a.reads++
	return v
}

func newAcquirer(dev Devices) (*Acquirer, *MockClock) {
	clk := &MockClock{}
	dev.Clock = clk
	return New(config.DefaultNode(), dev), clk
}

func TestReadLight(t *testing.T) {
	t.Run("valid reading", func(t *testing.T) {
		light := &MockLight{beginOK: true, lux: 321.5}
		bus := &MockBus{}
		a, clk := newAcquirer(Devices{Light: light, Bus: bus})

		ok, got := a.ReadLight()
		if !ok || got.Lux != 321.5 {
			t.Errorf("ReadLight() = %v, %v; want true, 321.5", ok, got.Lux)
		}
		if light.beginMode != config.LightOneTimeHighRes || light.confMode != config.LightOneTimeHighRes {
			t.Errorf("modes = %#x/%#x; want one-time high-res", light.beginMode, light.confMode)
		}
		if clk.total() != 180*time.Millisecond {
			t.Errorf("settle = %v; want 180ms", clk.total())
		}
	})

	fallbacks := []struct {
		name    string
		beginOK bool
		lux     float32
	}{
		{"begin failed", false, 42},
		{"negative", true, -1},
		{"NaN", true, nan},
		{"Inf", true, float32(math.Inf(1))},
	}
	for _, tc := range fallbacks {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := newAcquirer(Devices{Light: &MockLight{beginOK: tc.beginOK, lux: tc.lux}, Bus: &MockBus{}})
			ok, got := a.ReadLight()
			if ok || got.Lux != 0 {
				t.Errorf("ReadLight() = %v, %v; want false, 0", ok, got.Lux)
			}
		})
	}
}

func TestReadLight_powerDown(t *testing.T) {
	t.Run("primary acknowledges", func(t *testing.T) {
		bus := &MockBus{}
		a, _ := newAcquirer(Devices{Light: &MockLight{beginOK: true, lux: 1}, Bus: bus})
		a.ReadLight()

		if len(bus.writes) != 1 {
			t.Fatalf("writes = %d; want 1", len(bus.writes))
		}
		w := bus.writes[0]
		if w.addr != 0x23 || len(w.data) != 1 || w.data[0] != 0x00 {
			t.Errorf("write = %#x % X; want 0x23 00", w.addr, w.data)
		}
	})

	t.Run("falls back to secondary", func(t *testing.T) {
		bus := &MockBus{nack: map[uint16]bool{0x23: true}}
		a, _ := newAcquirer(Devices{Light: &MockLight{beginOK: true, lux: 1}, Bus: bus})
		a.ReadLight()

		if len(bus.writes) != 2 {
			t.Fatalf("writes = %d; want 2", len(bus.writes))
		}
		if bus.writes[0].addr != 0x23 || bus.writes[1].addr != 0x5C {
			t.Errorf("addresses = %#x, %#x; want 0x23, 0x5c", bus.writes[0].addr, bus.writes[1].addr)
		}
	})

	t.Run("powers down after failed init", func(t *testing.T) {
		bus := &MockBus{}
		a, _ := newAcquirer(Devices{Light: &MockLight{beginOK: false}, Bus: bus})
		a.ReadLight()
		if len(bus.writes) != 1 {
			t.Errorf("writes = %d; want 1", len(bus.writes))
		}
	})
}

func TestReadEnvironment(t *testing.T) {
	t.Run("first attempt", func(t *testing.T) {
		env := &MockEnv{samples: []envSample{{21.5, 40}}}
		a, clk := newAcquirer(Devices{Environment: env})

		got := a.ReadEnvironment()
		if got.TemperatureC != 21.5 || got.HumidityPct != 40 {
			t.Errorf("ReadEnvironment() = %+v; want 21.5/40", got)
		}
		if env.humReads != 1 || len(clk.sleeps) != 0 {
			t.Errorf("reads/sleeps = %d/%d; want 1/0", env.humReads, len(clk.sleeps))
		}
	})

	t.Run("second attempt stops retrying", func(t *testing.T) {
		env := &MockEnv{samples: []envSample{{nan, nan}, {19, 60}, {99, 99}}}
		a, clk := newAcquirer(Devices{Environment: env})

		got := a.ReadEnvironment()
		if got.TemperatureC != 19 || got.HumidityPct != 60 {
			t.Errorf("ReadEnvironment() = %+v; want 19/60", got)
		}
		if env.humReads != 2 || env.tempReads != 2 {
			t.Errorf("reads = %d/%d; want 2/2", env.humReads, env.tempReads)
		}
		if len(clk.sleeps) != 1 || clk.sleeps[0] != 50*time.Millisecond {
			t.Errorf("sleeps = %v; want [50ms]", clk.sleeps)
		}
	})

	t.Run("all attempts fail", func(t *testing.T) {
		env := &MockEnv{samples: []envSample{{nan, nan}}}
		a, clk := newAcquirer(Devices{Environment: env})

		got := a.ReadEnvironment()
		if got.TemperatureC != 0 || got.HumidityPct != 0 {
			t.Errorf("ReadEnvironment() = %+v; want 0/0", got)
		}
		if env.humReads != 3 {
			t.Errorf("reads = %d; want 3", env.humReads)
		}
		if clk.total() != 150*time.Millisecond {
			t.Errorf("total delay = %v; want 150ms", clk.total())
		}
	})

	t.Run("fields fall back independently", func(t *testing.T) {
		env := &MockEnv{samples: []envSample{{22.25, nan}}}
		a, _ := newAcquirer(Devices{Environment: env})

		got := a.ReadEnvironment()
		if got.TemperatureC != 22.25 || got.HumidityPct != 0 {
			t.Errorf("ReadEnvironment() = %+v; want 22.25/0", got)
		}
	})
}

func TestReadBattery(t *testing.T) {
	t.Run("discards first sample and averages", func(t *testing.T) {
		// 9999 is the discarded settling sample.
		a, clk := newAcquirer(Devices{Battery: adcSequence(9999, 16, 1990, 2010)})

		got := a.ReadBattery()
		// mean 2000 mV → 2.0 V at the pin, ×2 divider.
		if math.Abs(float64(got.Voltage)-4.0) > 1e-6 {
			t.Errorf("Voltage = %v; want 4.0", got.Voltage)
		}
		want := 5*time.Millisecond + 16*2*time.Millisecond
		if clk.total() != want {
			t.Errorf("total delay = %v; want %v", clk.total(), want)
		}
	})

	t.Run("configures channel once", func(t *testing.T) {
		adc := adcSequence(0, 16, 1000, 1000)
		a, _ := newAcquirer(Devices{Battery: adc})
		a.ReadBattery()

		if adc.configured != 1 {
			t.Errorf("Configure calls = %d; want 1", adc.configured)
		}
		if adc.cfg.ResolutionBits != 12 || adc.cfg.RangeMilliVolts != 3300 {
			t.Errorf("cfg = %+v; want 12 bits / 3300 mV", adc.cfg)
		}
		if adc.reads != 17 {
			t.Errorf("reads = %d; want 17", adc.reads)
		}
	})

	t.Run("calibration multiplier", func(t *testing.T) {
		cfg := config.DefaultNode()
		cfg.Battery.Calibration = 1.05
		a := New(cfg, Devices{Battery: adcSequence(0, 16, 1500, 1500), Clock: &MockClock{}})

		got := a.ReadBattery()
		if math.Abs(float64(got.Voltage)-3.15) > 1e-5 {
			t.Errorf("Voltage = %v; want 3.15", got.Voltage)
		}
	})
}

// adcSequence returns a channel that yields first, then n samples alternating a and b.
func adcSequence(first uint32, n int, a, b uint32) *MockADC {
	values := []uint32{first}
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			values = append(values, a)
		} else {
			values = append(values, b)
		}
	}
	return &MockADC{values: values}
}
