package config

import "time"

// BH1750 wiring and opcodes used by the node.
const (
	LightOneTimeHighRes   byte   = 0x20
	LightPowerDown        byte   = 0x00
	LightPrimaryAddress   uint16 = 0x23
	LightSecondaryAddress uint16 = 0x5C
)

// Advertising flags: LE general discoverable, BR/EDR not supported.
const AdvertisingFlags byte = 0x06

// BatteryConfig controls the oversampled battery measurement.
type BatteryConfig struct {
	ResolutionBits  uint8
	RangeMilliVolts uint32
	SettleDelay     time.Duration
	Samples         int
	SampleDelay     time.Duration
	// DividerFactor undoes the external voltage divider (100k / 100k).
	DividerFactor float32
	Calibration   float32
}

// EnvironmentConfig controls the temperature/humidity retry policy.
type EnvironmentConfig struct {
	Attempts   int
	RetryDelay time.Duration
}

// LightConfig controls the one-shot illuminance measurement.
type LightConfig struct {
	Mode             byte
	SettleDelay      time.Duration
	PowerDownOpcode  byte
	PrimaryAddress   uint16
	SecondaryAddress uint16
}

// RadioConfig controls the advertising burst.
type RadioConfig struct {
	TxPowerDBm  int8
	Flags       byte
	IntervalMin time.Duration
	IntervalMax time.Duration
	Burst       time.Duration
}

// Node holds every tunable of a sensor node. It is built once at startup and
// passed to all components; nothing reads these values from globals.
type Node struct {
	Battery       BatteryConfig
	Environment   EnvironmentConfig
	Light         LightConfig
	Radio         RadioConfig
	SleepDuration time.Duration
}

// DefaultNode returns the values the firmware ships with.
func DefaultNode() Node {
	return Node{
		Battery: BatteryConfig{
			ResolutionBits:  12,
			RangeMilliVolts: 3300,
			SettleDelay:     5 * time.Millisecond,
			Samples:         16,
			SampleDelay:     2 * time.Millisecond,
			DividerFactor:   2.0,
			Calibration:     1.0,
		},
		Environment: EnvironmentConfig{
			Attempts:   3,
			RetryDelay: 50 * time.Millisecond,
		},
		Light: LightConfig{
			Mode:             LightOneTimeHighRes,
			SettleDelay:      180 * time.Millisecond,
			PowerDownOpcode:  LightPowerDown,
			PrimaryAddress:   LightPrimaryAddress,
			SecondaryAddress: LightSecondaryAddress,
		},
		Radio: RadioConfig{
			TxPowerDBm: 0,
			Flags:      AdvertisingFlags,
			// 32 and 64 units of 0.625 ms.
			IntervalMin: 20 * time.Millisecond,
			IntervalMax: 40 * time.Millisecond,
			Burst:       1000 * time.Millisecond,
		},
		SleepDuration: 120 * time.Second,
	}
}
