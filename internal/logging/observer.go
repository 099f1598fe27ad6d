//go:build !tinygo

package logging

import (
	"log/slog"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/acquire"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
	"github.com/Moshkopp/LuxTempMeter/internal/utils"
)

// CycleObserver logs the diagnostics of a wake cycle.
type CycleObserver struct {
	logger *slog.Logger
}

func NewCycleObserver(logger *slog.Logger) *CycleObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CycleObserver{logger: logger}
}

func (o *CycleObserver) Light(ok bool, r acquire.Light) {
	if !ok {
		o.logger.Warn("light sensor unavailable", "lux", r.Lux)
		return
	}
	o.logger.Debug("light", "lux", r.Lux)
}

func (o *CycleObserver) Battery(r acquire.Battery) {
	o.logger.Debug("battery", "volts", r.Voltage)
}

func (o *CycleObserver) Environment(r acquire.Environment) {
	o.logger.Debug("environment", "temperature_c", r.TemperatureC, "humidity_pct", r.HumidityPct)
}

func (o *CycleObserver) Broadcast(pid uint8, p bthome.Payload) {
	o.logger.Info("broadcast", "packet_id", pid, "payload", utils.BytesToHex(p[:]))
}

func (o *CycleObserver) Suspend(d time.Duration, err error) {
	if err != nil {
		o.logger.Warn("cycle failed", "error", err, "sleep", d)
		return
	}
	o.logger.Info("suspend", "sleep", d)
}
