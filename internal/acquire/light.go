package acquire

// ReadLight takes one high-resolution illuminance reading and then powers the
// sensor down. ok is false, and Lux is 0, when the sensor failed to start or
// returned a non-finite or negative value.
func (a *Acquirer) ReadLight() (bool, Light) {
	ok := a.dev.Light.Begin(a.light.Mode)
	a.dev.Light.Configure(a.light.Mode)
	a.dev.Clock.Sleep(a.light.SettleDelay)

	lux := a.dev.Light.ReadLightLevel()
	if !ok || !finite(lux) || lux < 0 {
		ok = false
		lux = 0
	}

	a.powerDownLight()
	return ok, Light{Lux: lux}
}

// powerDownLight writes the power-down opcode straight to the bus, bypassing
// the driver. The device answers on one of two addresses; the secondary one is
// only tried when the primary transmission fails.
func (a *Acquirer) powerDownLight() {
	cmd := []byte{a.light.PowerDownOpcode}
	if err := a.dev.Bus.Tx(a.light.PrimaryAddress, cmd, nil); err != nil {
		_ = a.dev.Bus.Tx(a.light.SecondaryAddress, cmd, nil)
	}
}
