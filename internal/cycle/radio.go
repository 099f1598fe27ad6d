package cycle

import "time"

// Advertisement is one non-connectable broadcast: flags plus a single
// 16-bit-UUID service-data element.
type Advertisement struct {
	Flags       byte
	ServiceUUID uint16
	ServiceData []byte
	IntervalMin time.Duration
	IntervalMax time.Duration
}

// Radio is the BLE stack as seen by the controller. Init brings the stack up
// with an anonymous identity; Deinit releases it completely so nothing stays
// powered through suspension.
type Radio interface {
	Init() error
	SetTxPower(dBm int8) error
	Configure(adv Advertisement) error
	Start() error
	Stop() error
	Deinit() error
}
