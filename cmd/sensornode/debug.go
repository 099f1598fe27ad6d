//go:build tinygo && debug

package main

import (
	"machine"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
	"github.com/Moshkopp/LuxTempMeter/internal/cycle"
)

// serialObserver prints cycle diagnostics over USB serial. Build with
// -tags debug.
type serialObserver struct{}

func newObserver() cycle.Observer {
	initSerial()
	println("boot: luxtempmeter node")
	return serialObserver{}
}

func (serialObserver) Light(ok bool, r acquire.Light) {
	if !ok {
		println("light: sensor unavailable")
		return
	}
	println("light: lux", r.Lux)
}

func (serialObserver) Battery(r acquire.Battery) {
	println("battery: volts", r.Voltage)
}

func (serialObserver) Environment(r acquire.Environment) {
	println("env: temp", r.TemperatureC, "hum", r.HumidityPct)
}

func (serialObserver) Broadcast(pid uint8, p bthome.Payload) {
	print("ble: pid ", pid, " payload")
	for _, b := range p {
		print(" ", hexDigits[b>>4:b>>4+1], hexDigits[b&0x0F:b&0x0F+1])
	}
	println()
}

func (serialObserver) Suspend(d time.Duration, err error) {
	if err != nil {
		println("cycle: error", err.Error())
	}
	println("sleep: ms", d.Milliseconds())
}

const hexDigits = "0123456789ABCDEF"

// serialDelay gives a USB host time to enumerate the CDC device before the
// first debug line.
const serialDelay = 1500 * time.Millisecond

func initSerial() {
	machine.Serial.Configure(machine.UARTConfig{})
	time.Sleep(serialDelay)
}
