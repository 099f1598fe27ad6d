package acquire

// ReadEnvironment polls the temperature/humidity sensor until one attempt
// yields a finite pair or the attempts run out. The sensor class cannot be
// polled faster than the retry delay, which also follows the last failure.
// Each field that is still unusable afterwards becomes 0.
func (a *Acquirer) ReadEnvironment() Environment {
	var t, h float32
	attempts := a.env.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		h = a.dev.Environment.ReadHumidity()
		t = a.dev.Environment.ReadTemperature()
		if finite(t) && finite(h) {
			break
		}
		a.dev.Clock.Sleep(a.env.RetryDelay)
	}

	if !finite(t) {
		t = 0
	}
	if !finite(h) {
		h = 0
	}
	return Environment{TemperatureC: t, HumidityPct: h}
}
