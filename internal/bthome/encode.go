// Package bthome implements the BTHome v2 service-data format the node
// broadcasts: a fixed-layout encoder for the node and a generic decoder for
// receivers.
//
// Payload layout (little-endian):
//
//	+------+------+-----+------+---------+------+--------+------+--------+------+----------+
//	| 0x40 | 0x00 | pid | 0x05 | lux×100 | 0x0C |   mV   | 0x02 | °C×100 | 0x03 | %RH×100  |
//	+------+------+-----+------+---------+------+--------+------+--------+------+----------+
//	|  1   |  1   |  1  |  1   |    3    |  1   |   2    |  1   |   2    |  1   |    2     |
//	+------+------+-----+------+---------+------+--------+------+--------+------+----------+
package bthome

import "math"

// ServiceUUID is the 16-bit service UUID that carries BTHome service data.
const ServiceUUID uint16 = 0xFCD2

// PayloadLen is the size of the node's service-data value.
const PayloadLen = 16

const (
	deviceInfoUnencryptedV2 = 0x40

	objPacketID    = 0x00
	objIlluminance = 0x05
	objVoltage     = 0x0C
	objTemperature = 0x02
	objHumidity    = 0x03

	maxIlluminance = 0xFFFFFF
	maxMilliVolts  = 0xFFFF
	maxTemperature = math.MaxInt16
	minTemperature = math.MinInt16
	maxHumidity    = 10000
)

// Payload is one encoded advertisement value. It is an array so it is
// copied, never shared.
type Payload [PayloadLen]byte

// Bytes returns a copy of the payload as a slice.
func (p Payload) Bytes() []byte {
	out := make([]byte, PayloadLen)
	copy(out, p[:])
	return out
}

// Encode builds the payload for one wake cycle. It is total: every input,
// including NaN and infinities, maps to exactly one payload.
func Encode(pid uint8, lux, battV, tempC, humidityPct float32) Payload {
	lux100 := scaleUnsigned(lux, 100, maxIlluminance)
	mv := scaleUnsigned(battV, 1000, maxMilliVolts)
	temp100 := scaleSigned(tempC, 100, minTemperature, maxTemperature)
	hum100 := scaleUnsigned(humidityPct, 100, maxHumidity)

	var p Payload
	p[0] = deviceInfoUnencryptedV2
	p[1] = objPacketID
	p[2] = pid

	p[3] = objIlluminance
	p[4] = byte(lux100)
	p[5] = byte(lux100 >> 8)
	p[6] = byte(lux100 >> 16)

	p[7] = objVoltage
	p[8] = byte(mv)
	p[9] = byte(mv >> 8)

	p[10] = objTemperature
	p[11] = byte(uint16(temp100))
	p[12] = byte(uint16(temp100) >> 8)

	p[13] = objHumidity
	p[14] = byte(hum100)
	p[15] = byte(hum100 >> 8)

	return p
}

// scaleUnsigned rounds v×factor half-up into [0, limit]. Non-finite and
// non-positive inputs are zero.
func scaleUnsigned(v, factor float32, limit uint32) uint32 {
	if !finite(v) || v <= 0 {
		return 0
	}
	scaled := v*factor + 0.5
	if scaled >= float32(limit) {
		return limit
	}
	return uint32(scaled)
}

// scaleSigned rounds v×factor away from zero into [lo, hi]. NaN is zero,
// infinities clamp.
func scaleSigned(v, factor float32, lo, hi int32) int32 {
	if v != v {
		return 0
	}
	var scaled float32
	if v >= 0 {
		scaled = v*factor + 0.5
	} else {
		scaled = v*factor - 0.5
	}
	if scaled >= float32(hi) {
		return hi
	}
	if scaled <= float32(lo) {
		return lo
	}
	return int32(scaled)
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
