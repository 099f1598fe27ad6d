//go:build !tinygo

// Package sim provides simulated node hardware for host runs and tests.
package sim

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/cycle"
	"github.com/Moshkopp/LuxTempMeter/internal/utils"
)

// Light simulates an illuminance sensor around a base level.
type Light struct {
	Base    float32
	Jitter  float32
	Fail    bool
	rng     *rand.Rand
	started bool
}

func NewLight(seed uint64) *Light {
	return &Light{Base: 250, Jitter: 50, rng: rand.New(rand.NewPCG(seed, 1))}
}

func (l *Light) Begin(mode byte) bool {
	l.started = !l.Fail
	return l.started
}

func (l *Light) Configure(mode byte) {}

func (l *Light) ReadLightLevel() float32 {
	if !l.started {
		return -1
	}
	return l.Base + (l.rng.Float32()*2-1)*l.Jitter
}

// Environment simulates a DHT22 that drops a reading now and then.
type Environment struct {
	Temperature float32
	Humidity    float32
	// FailureRate is the probability that a read returns NaN.
	FailureRate float64
	rng         *rand.Rand
}

func NewEnvironment(seed uint64) *Environment {
	return &Environment{Temperature: 21, Humidity: 50, FailureRate: 0.1, rng: rand.New(rand.NewPCG(seed, 2))}
}

func (e *Environment) ReadHumidity() float32 {
	if e.rng.Float64() < e.FailureRate {
		return float32(math.NaN())
	}
	return e.Humidity + (e.rng.Float32()*2-1)*2
}

func (e *Environment) ReadTemperature() float32 {
	if e.rng.Float64() < e.FailureRate {
		return float32(math.NaN())
	}
	return e.Temperature + (e.rng.Float32()*2-1)*0.5
}

// Analog is a battery channel at a fixed pin voltage with a little noise.
type Analog struct {
	MilliVolts uint32
	cfg        acquire.AnalogConfig
	rng        *rand.Rand
}

func NewAnalog(mv uint32, seed uint64) *Analog {
	return &Analog{MilliVolts: mv, rng: rand.New(rand.NewPCG(seed, 3))}
}

func (a *Analog) Configure(cfg acquire.AnalogConfig) { a.cfg = cfg }

func (a *Analog) ReadMilliVolts() uint32 {
	mv := int64(a.MilliVolts) + int64(a.rng.IntN(11)) - 5
	if mv < 0 {
		mv = 0
	}
	if a.cfg.RangeMilliVolts > 0 && mv > int64(a.cfg.RangeMilliVolts) {
		mv = int64(a.cfg.RangeMilliVolts)
	}
	return uint32(mv)
}

// Bus records writes. Addresses in Absent fail like an unacknowledged
// transfer.
type Bus struct {
	mu     sync.Mutex
	Absent map[uint16]bool
	writes []Write
}

type Write struct {
	Addr uint16
	Data []byte
}

type nackError uint16

func (e nackError) Error() string { return "sim: no ack from 0x" + utils.Hex4(uint16(e)) }

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(w))
	copy(cp, w)
	b.writes = append(b.writes, Write{Addr: addr, Data: cp})
	if b.Absent[addr] {
		return nackError(addr)
	}
	return nil
}

func (b *Bus) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Write, len(b.writes))
	copy(out, b.writes)
	return out
}

// Radio logs every advertisement it is asked to send.
type Radio struct {
	logger *slog.Logger
	mu     sync.Mutex
	active bool
	up     bool
	adv    cycle.Advertisement
	sent   []cycle.Advertisement
}

func NewRadio(logger *slog.Logger) *Radio {
	if logger == nil {
		logger = slog.Default()
	}
	return &Radio{logger: logger}
}

func (r *Radio) Init() error {
	r.mu.Lock()
	r.up = true
	r.mu.Unlock()
	return nil
}

func (r *Radio) SetTxPower(dBm int8) error { return nil }

func (r *Radio) Configure(adv cycle.Advertisement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adv = adv
	r.adv.ServiceData = append([]byte(nil), adv.ServiceData...)
	return nil
}

func (r *Radio) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = true
	r.sent = append(r.sent, r.adv)
	r.logger.Info("sim: advertising",
		"uuid", utils.Hex4(r.adv.ServiceUUID),
		"data", utils.BytesToHex(r.adv.ServiceData),
	)
	return nil
}

func (r *Radio) Stop() error {
	r.mu.Lock()
	r.active = false
	r.mu.Unlock()
	return nil
}

func (r *Radio) Deinit() error {
	r.mu.Lock()
	r.up = false
	r.mu.Unlock()
	return nil
}

// Sent returns the advertisements started so far.
func (r *Radio) Sent() []cycle.Advertisement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]cycle.Advertisement, len(r.sent))
	copy(out, r.sent)
	return out
}

// Released reports whether the radio is fully down.
func (r *Radio) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.up && !r.active
}

// Suspender sleeps on the host and returns so the caller can start the next
// cycle. A non-zero Override replaces the requested duration.
type Suspender struct {
	Override time.Duration
	Sleep    func(time.Duration)
}

func (s Suspender) Suspend(d time.Duration) {
	if s.Override > 0 {
		d = s.Override
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}
