// Package btradio drives the BLE advertiser through tinygo.org/x/bluetooth.
// It builds for TinyGo boards (HCI over cyw43439 on the Pico W) and for
// Linux hosts (BlueZ).
package btradio

import (
	"errors"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/Moshkopp/LuxTempMeter/internal/cycle"
)

var errNotInitialized = errors.New("btradio: not initialized")

// Radio advertises non-connectable packets without a local name, so nothing
// but the service data identifies the node.
type Radio struct {
	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement
	enabled bool
	active  bool
}

func New(adapter *bluetooth.Adapter) *Radio {
	return &Radio{adapter: adapter}
}

func (r *Radio) Init() error {
	if !r.enabled {
		if err := r.adapter.Enable(); err != nil {
			return fmt.Errorf("enable adapter: %w", err)
		}
		r.enabled = true
	}
	r.adv = r.adapter.DefaultAdvertisement()
	return nil
}

// SetTxPower is accepted for the 0 dBm default only; neither the cyw43439
// HCI driver nor BlueZ expose a per-advertisement power setting.
func (r *Radio) SetTxPower(dBm int8) error {
	if dBm != 0 {
		return fmt.Errorf("btradio: tx power %d dBm not supported", dBm)
	}
	return nil
}

// Configure installs the advertisement. The stack takes a single interval,
// so the lower bound is used.
func (r *Radio) Configure(a cycle.Advertisement) error {
	if r.adv == nil {
		return errNotInitialized
	}
	return r.adv.Configure(bluetooth.AdvertisementOptions{
		AdvertisementType: bluetooth.AdvertisingTypeNonConnInd,
		Interval:          bluetooth.NewDuration(a.IntervalMin),
		ServiceData: []bluetooth.ServiceDataElement{
			{UUID: bluetooth.New16BitUUID(a.ServiceUUID), Data: a.ServiceData},
		},
	})
}

func (r *Radio) Start() error {
	if r.adv == nil {
		return errNotInitialized
	}
	if err := r.adv.Start(); err != nil {
		return err
	}
	r.active = true
	return nil
}

func (r *Radio) Stop() error {
	if r.adv == nil || !r.active {
		return nil
	}
	r.active = false
	return r.adv.Stop()
}

// Deinit stops any advertisement and drops it. The adapter has no disable
// call; on the Pico the following watchdog reset powers the radio chip down.
func (r *Radio) Deinit() error {
	err := r.Stop()
	r.adv = nil
	return err
}
