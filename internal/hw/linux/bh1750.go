//go:build linux && !tinygo

// Package linux binds the node's collaborators to sensors wired to a Linux
// single-board computer: periph.io for I2C, go-dht for the DHT22 and BlueZ
// (through btradio) for advertising.
package linux

import (
	"encoding/binary"

	"periph.io/x/conn/v3/i2c"
)

const (
	bh1750PowerOn = 0x01
	// Counts per lux in the high resolution modes.
	bh1750CountsPerLux = 1.2
)

// BH1750 is a minimal driver on a raw I2C bus. It only needs the one-shot
// modes the node uses.
type BH1750 struct {
	dev  i2c.Dev
	mode byte
}

func NewBH1750(bus i2c.Bus, addr uint16) *BH1750 {
	return &BH1750{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

// Begin powers the device on and reports whether it acknowledged.
func (b *BH1750) Begin(mode byte) bool {
	if err := b.dev.Tx([]byte{bh1750PowerOn}, nil); err != nil {
		return false
	}
	b.mode = mode
	return true
}

// Configure writes the measurement mode, which starts a one-shot conversion.
func (b *BH1750) Configure(mode byte) {
	b.mode = mode
	_ = b.dev.Tx([]byte{mode}, nil)
}

// ReadLightLevel returns -1 when the device does not answer.
func (b *BH1750) ReadLightLevel() float32 {
	var raw [2]byte
	if err := b.dev.Tx(nil, raw[:]); err != nil {
		return -1
	}
	return float32(binary.BigEndian.Uint16(raw[:])) / bh1750CountsPerLux
}
