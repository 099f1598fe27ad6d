package acquire

// ReadBattery averages the battery channel after letting the front-end settle.
// The first sample is discarded. Out-of-range values are left for the encoder
// to clamp.
func (a *Acquirer) ReadBattery() Battery {
	ch := a.dev.Battery
	ch.Configure(AnalogConfig{
		ResolutionBits:  a.battery.ResolutionBits,
		RangeMilliVolts: a.battery.RangeMilliVolts,
	})

	_ = ch.ReadMilliVolts()
	a.dev.Clock.Sleep(a.battery.SettleDelay)

	n := a.battery.Samples
	if n <= 0 {
		n = 1
	}
	var sum uint32
	for i := 0; i < n; i++ {
		sum += ch.ReadMilliVolts()
		a.dev.Clock.Sleep(a.battery.SampleDelay)
	}

	mv := float32(sum) / float32(n)
	v := mv / 1000
	return Battery{Voltage: v * a.battery.DividerFactor * a.battery.Calibration}
}
