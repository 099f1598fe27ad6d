package types

import "time"

// Telemetry represents one decoded broadcast from a sensor node.
type Telemetry struct {
	StationID   string    `json:"station_id"`
	Timestamp   time.Time `json:"timestamp"`
	Illuminance *float64  `json:"illuminance_lux,omitempty"`
	Temperature *float64  `json:"temperature_c,omitempty"`
	Humidity    *float64  `json:"humidity_pct,omitempty"`
	Pressure    *float64  `json:"pressure_hpa,omitempty"`
	Battery     *float64  `json:"battery_v,omitempty"`
	Sequence    *int      `json:"sequence,omitempty"`
	// Missed counts packet ids skipped since the previous broadcast.
	Missed int   `json:"missed"`
	RSSI   int16 `json:"rssi"`
}
