//go:build tinygo

package pico

import (
	"errors"
	"machine"
	"time"

	"device/rp"
)

// scratchMagic marks SCRATCH0 as holding a counter written by this firmware.
// The scratch registers survive a watchdog reset but not a power cycle.
const scratchMagic = 0x4254_4832

var errScratchWrite = errors.New("pico: scratch register write lost")

// ScratchStore keeps the packet counter in the watchdog scratch registers.
type ScratchStore struct{}

// Load returns 0 after a power-on reset.
func (ScratchStore) Load() (uint8, error) {
	if rp.WATCHDOG.SCRATCH1.Get() != scratchMagic {
		return 0, nil
	}
	return uint8(rp.WATCHDOG.SCRATCH0.Get()), nil
}

func (ScratchStore) Store(v uint8) error {
	rp.WATCHDOG.SCRATCH0.Set(uint32(v))
	rp.WATCHDOG.SCRATCH1.Set(scratchMagic)
	if rp.WATCHDOG.SCRATCH0.Get() != uint32(v) {
		return errScratchWrite
	}
	return nil
}

// WatchdogSuspender idles for the requested duration with the radio and
// sensors released, then resets through the watchdog so every cycle starts
// from a clean boot. It does not return.
type WatchdogSuspender struct{}

func (WatchdogSuspender) Suspend(d time.Duration) {
	time.Sleep(d)
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	machine.Watchdog.Start()
	for {
	}
}
