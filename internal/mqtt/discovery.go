//go:build !tinygo

package mqtt

import (
	"encoding/json"
	"fmt"
)

const discoveryPrefix = "homeassistant"

// SensorConfig describes one Home Assistant sensor entity of a station.
type SensorConfig struct {
	Key         string
	Name        string
	Unit        string
	DeviceClass string
	// Field is the telemetry JSON field holding the value.
	Field string
}

// NodeSensors are the entities every sensor node exposes.
var NodeSensors = []SensorConfig{
	{Key: "illuminance", Name: "Illuminance", Unit: "lx", DeviceClass: "illuminance", Field: "illuminance_lux"},
	{Key: "temperature", Name: "Temperature", Unit: "°C", DeviceClass: "temperature", Field: "temperature_c"},
	{Key: "humidity", Name: "Humidity", Unit: "%", DeviceClass: "humidity", Field: "humidity_pct"},
	{Key: "voltage", Name: "Battery voltage", Unit: "V", DeviceClass: "voltage", Field: "battery_v"},
}

type discoveryDevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
}

type discoveryConfig struct {
	Name          string          `json:"name"`
	UniqueID      string          `json:"unique_id"`
	StateTopic    string          `json:"state_topic"`
	ValueTemplate string          `json:"value_template"`
	Unit          string          `json:"unit_of_measurement"`
	DeviceClass   string          `json:"device_class,omitempty"`
	StateClass    string          `json:"state_class"`
	Device        discoveryDevice `json:"device"`
}

// DiscoveryTopic returns homeassistant/sensor/<station>/<key>/config.
func DiscoveryTopic(stationID, key string) string {
	return discoveryPrefix + "/sensor/" + stationID + "/" + key + "/config"
}

func (c *Client) discoveryPayload(stationID string, s SensorConfig) ([]byte, error) {
	return json.Marshal(discoveryConfig{
		Name:          s.Name,
		UniqueID:      stationID + "_" + s.Key,
		StateTopic:    c.TelemetryTopic(stationID),
		ValueTemplate: "{{ value_json." + s.Field + " }}",
		Unit:          s.Unit,
		DeviceClass:   s.DeviceClass,
		StateClass:    "measurement",
		Device: discoveryDevice{
			Identifiers:  []string{stationID},
			Name:         stationID,
			Model:        "BTHome lux/climate node",
			Manufacturer: "LuxTempMeter",
		},
	})
}

// PublishDiscovery publishes retained discovery configs for every node
// sensor of a station. Failures of single entities are collected; the rest
// are still published.
func (c *Client) PublishDiscovery(stationID string) error {
	var failed int
	var lastErr error
	for _, s := range NodeSensors {
		data, err := c.discoveryPayload(stationID, s)
		if err != nil {
			return fmt.Errorf("marshal discovery: %w", err)
		}
		topic := DiscoveryTopic(stationID, s.Key)
		if err := c.publish(topic, true, data); err != nil {
			c.logger.Warn("failed to publish discovery", "topic", topic, "error", err)
			failed++
			lastErr = err
		}
	}
	if failed > 0 {
		return fmt.Errorf("publish discovery: %d of %d failed: %w", failed, len(NodeSensors), lastErr)
	}
	c.logger.Info("published discovery", "station_id", stationID, "sensors", len(NodeSensors))
	return nil
}
