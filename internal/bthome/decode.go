package bthome

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrTooShort           = errors.New("bthome: payload too short")
	ErrEncrypted          = errors.New("bthome: encrypted payloads are not supported")
	ErrUnsupportedVersion = errors.New("bthome: unsupported version")
	ErrUnknownObject      = errors.New("bthome: unknown object id")
)

const (
	infoEncryptedBit = 0x01
	infoVersionShift = 5
	supportedVersion = 2

	objBattery         = 0x01
	objPressure        = 0x04
	objHumidityUint8   = 0x2E
	objTemperatureDeci = 0x45
	objVoltageDeci     = 0x4A
	objText            = 0x53
	objRaw             = 0x54
)

// Reading holds the measurements a receiver understood from one payload.
// Fields are nil when the payload did not carry the object. When an object
// repeats, the later occurrence wins.
type Reading struct {
	PacketID    *uint8
	Battery     *uint8 // percent
	Temperature *float64
	Humidity    *float64
	Pressure    *float64
	Illuminance *float64
	Voltage     *float64
}

// objectSizes maps BTHome v2 object ids to their fixed data length.
var objectSizes = map[byte]int{
	0x00: 1, 0x01: 1, 0x02: 2, 0x03: 2, 0x04: 3, 0x05: 3, 0x06: 2, 0x07: 2,
	0x08: 2, 0x09: 1, 0x0A: 3, 0x0B: 3, 0x0C: 2, 0x0D: 2, 0x0E: 2, 0x0F: 1,
	0x10: 1, 0x11: 1, 0x12: 2, 0x13: 2, 0x14: 2,
	0x2E: 1, 0x2F: 1,
	0x3A: 1, 0x3C: 2, 0x3D: 2, 0x3E: 4, 0x3F: 2,
	0x40: 2, 0x41: 2, 0x42: 3, 0x43: 2, 0x44: 2, 0x45: 2, 0x46: 1, 0x47: 2,
	0x48: 2, 0x49: 2, 0x4A: 2, 0x4B: 3, 0x4C: 4, 0x4D: 4, 0x4E: 4, 0x4F: 4,
	0x50: 4, 0x51: 2, 0x52: 2,
	0xF0: 2, 0xF1: 4, 0xF2: 3,
}

func init() {
	// Binary sensors (battery low .. window) are all one byte.
	for id := byte(0x15); id <= 0x2D; id++ {
		objectSizes[id] = 1
	}
}

// Decode parses an unencrypted BTHome v2 service-data value.
func Decode(data []byte) (Reading, error) {
	var r Reading
	if len(data) < 1 {
		return r, ErrTooShort
	}
	info := data[0]
	if info&infoEncryptedBit != 0 {
		return r, ErrEncrypted
	}
	if v := info >> infoVersionShift; v != supportedVersion {
		return r, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	for i := 1; i < len(data); {
		id := data[i]
		i++

		if id == objText || id == objRaw {
			if i >= len(data) {
				return r, fmt.Errorf("%w: object 0x%02X length", ErrTooShort, id)
			}
			i += 1 + int(data[i])
			if i > len(data) {
				return r, fmt.Errorf("%w: object 0x%02X", ErrTooShort, id)
			}
			continue
		}

		size, ok := objectSizes[id]
		if !ok {
			return r, fmt.Errorf("%w: 0x%02X", ErrUnknownObject, id)
		}
		if i+size > len(data) {
			return r, fmt.Errorf("%w: object 0x%02X", ErrTooShort, id)
		}
		v := data[i : i+size]
		i += size

		switch id {
		case objPacketID:
			pid := v[0]
			r.PacketID = &pid
		case objBattery:
			pct := v[0]
			r.Battery = &pct
		case objTemperature:
			r.Temperature = scaled(float64(int16(binary.LittleEndian.Uint16(v))), 0.01)
		case objTemperatureDeci:
			r.Temperature = scaled(float64(int16(binary.LittleEndian.Uint16(v))), 0.1)
		case objHumidity:
			r.Humidity = scaled(float64(binary.LittleEndian.Uint16(v)), 0.01)
		case objHumidityUint8:
			r.Humidity = scaled(float64(v[0]), 1)
		case objPressure:
			r.Pressure = scaled(float64(uint24(v)), 0.01)
		case objIlluminance:
			r.Illuminance = scaled(float64(uint24(v)), 0.01)
		case objVoltage:
			r.Voltage = scaled(float64(binary.LittleEndian.Uint16(v)), 0.001)
		case objVoltageDeci:
			r.Voltage = scaled(float64(binary.LittleEndian.Uint16(v)), 0.1)
		}
	}
	return r, nil
}

func uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func scaled(raw, factor float64) *float64 {
	v := raw * factor
	return &v
}
