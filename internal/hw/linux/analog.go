//go:build linux && !tinygo

package linux

import "github.com/Moshkopp/LuxTempMeter/internal/acquire"

// FixedAnalog stands in for a battery divider on boards without an ADC. It
// reports a constant pin voltage, clamped to the configured range.
type FixedAnalog struct {
	MilliVolts uint32
	cfg        acquire.AnalogConfig
}

func (a *FixedAnalog) Configure(cfg acquire.AnalogConfig) { a.cfg = cfg }

func (a *FixedAnalog) ReadMilliVolts() uint32 {
	if a.cfg.RangeMilliVolts > 0 && a.MilliVolts > a.cfg.RangeMilliVolts {
		return a.cfg.RangeMilliVolts
	}
	return a.MilliVolts
}
