//go:build !tinygo

package app

import (
	"log/slog"

	"github.com/Moshkopp/LuxTempMeter/internal/history"
	"github.com/Moshkopp/LuxTempMeter/internal/receiver"
	"github.com/Moshkopp/LuxTempMeter/internal/types"
)

// recordingPublisher writes each reading to the history before forwarding
// it. A history error never stops the forward.
type recordingPublisher struct {
	receiver.Publisher
	repo   history.Repository
	logger *slog.Logger
}

func (p *recordingPublisher) PublishTelemetry(stationID string, t types.Telemetry) error {
	t.StationID = stationID
	if err := p.repo.InsertReading(t); err != nil {
		p.logger.Warn("history: insert failed", "station_id", stationID, "error", err)
	}
	return p.Publisher.PublishTelemetry(stationID, t)
}
