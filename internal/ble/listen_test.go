//go:build !tinygo

package ble

import (
	"bytes"
	"testing"

	"tinygo.org/x/bluetooth"
)

func TestServiceData(t *testing.T) {
	payload := []byte{0x40, 0x00, 0x07}
	elems := []bluetooth.ServiceDataElement{
		{UUID: bluetooth.New16BitUUID(0x181A), Data: []byte{0x01}},
		{UUID: bluetooth.New16BitUUID(0xFCD2), Data: payload},
	}

	got, ok := serviceData(elems, 0xFCD2)
	if !ok {
		t.Fatal("serviceData() ok = false; want true")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("serviceData() = % X; want % X", got, payload)
	}
	got[0] = 0xFF
	if payload[0] != 0x40 {
		t.Error("serviceData() aliases the scan buffer")
	}

	if _, ok := serviceData(elems[:1], 0xFCD2); ok {
		t.Error("serviceData() ok = true without a matching uuid")
	}
}
