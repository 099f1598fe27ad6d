package receiver

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Moshkopp/LuxTempMeter/internal/ble"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
	"github.com/Moshkopp/LuxTempMeter/internal/types"
	"github.com/Moshkopp/LuxTempMeter/internal/utils"
)

// Publisher delivers telemetry for a station.
type Publisher interface {
	PublishTelemetry(stationID string, t types.Telemetry) error
	PublishDiscovery(stationID string) error
}

type Options struct {
	// StationPrefix is prepended to the address-derived station id.
	StationPrefix string
	DedupWindow   time.Duration
	// Discovery announces each station once before its first telemetry.
	Discovery bool
	Logger    *slog.Logger
}

// Handler decodes BTHome matches, drops burst repeats and publishes the rest.
type Handler struct {
	pub     Publisher
	tracker *Tracker
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	announced map[string]bool
}

func NewHandler(pub Publisher, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		pub:       pub,
		tracker:   NewTracker(opts.DedupWindow),
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		announced: make(map[string]bool),
	}
}

// StationID derives a topic-safe id from a BLE address.
func StationID(prefix, addr string) string {
	return prefix + strings.ToLower(strings.ReplaceAll(addr, ":", ""))
}

// HandleMatch is called from the scanner goroutine only.
func (h *Handler) HandleMatch(m ble.Match) {
	r, err := bthome.Decode(m.Data)
	if err != nil {
		h.logger.Debug("receiver: ignore payload", "addr", m.Address, "error", err)
		return
	}
	if r.PacketID == nil {
		h.logger.Debug("receiver: payload without packet id", "addr", m.Address)
		return
	}

	seenAt := m.SeenAt
	if seenAt.IsZero() {
		seenAt = h.now()
	}
	st := h.tracker.Observe(m.Address, *r.PacketID, seenAt)
	if st.Duplicate {
		return
	}

	station := StationID(h.opts.StationPrefix, m.Address)
	if h.opts.Discovery && !h.announced[station] {
		if err := h.pub.PublishDiscovery(station); err != nil {
			h.logger.Warn("receiver: discovery failed", "station_id", station, "error", err)
		} else {
			h.announced[station] = true
		}
	}

	seq := int(*r.PacketID)
	t := types.Telemetry{
		StationID:   station,
		Timestamp:   seenAt,
		Illuminance: r.Illuminance,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Pressure:    r.Pressure,
		Battery:     r.Voltage,
		Sequence:    &seq,
		Missed:      st.Missed,
		RSSI:        m.RSSI,
	}
	if err := h.pub.PublishTelemetry(station, t); err != nil {
		h.logger.Warn("receiver: failed to publish telemetry", "station_id", station, "packet_id", seq, "error", err)
		return
	}
	if st.Missed > 0 {
		h.logger.Warn("receiver: packets missed", "station_id", station, "missed", st.Missed)
	}
	h.logger.Info("receiver: reading published",
		"station_id", station,
		"packet_id", seq,
		"rssi", m.RSSI,
		"data", utils.BytesToHex(m.Data),
	)
}
