//go:build !tinygo

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the environment-driven configuration shared by the host tools
// (gateway and node simulator). It never alters the node's wire format.
type Config struct {
	AppEnv   string
	LogLevel slog.Level

	MQTTBroker      string
	MQTTPort        int
	MQTTClientID    string
	MQTTTopicPrefix string
	HADiscovery     bool

	BLEAdapter    string
	StationPrefix string
	DedupWindow   time.Duration
	// GatewayDBPath enables the local reading history when set.
	GatewayDBPath string

	NodeHardware  string
	CounterPath   string
	SimCycles     int
	SimSleep      time.Duration
	I2CBus        string
	DHTPin        string
	EnvSensor     string
	BME280Address uint16
	BatteryMV     uint32
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	mqttBroker := envOr("MQTT_BROKER", "localhost")

	mqttPortStr := envOr("MQTT_PORT", "1883")
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", mqttPortStr, err)
	}

	mqttClientID := envOr("MQTT_CLIENT_ID", "luxtempmeter-gateway")
	mqttTopicPrefix := strings.TrimSuffix(envOr("MQTT_TOPIC_PREFIX", "stations"), "/")

	haDiscoveryStr := envOr("HA_DISCOVERY", "false")
	haDiscovery, err := strconv.ParseBool(haDiscoveryStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid HA_DISCOVERY %q: %w", haDiscoveryStr, err)
	}

	bleAdapter := envOr("BLE_ADAPTER", "hci0")
	stationPrefix := envOr("STATION_PREFIX", "bthome-")

	dedupWindowStr := envOr("DEDUP_WINDOW", "60s")
	dedupWindow, err := time.ParseDuration(dedupWindowStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid DEDUP_WINDOW %q: %w", dedupWindowStr, err)
	}
	if dedupWindow <= 0 {
		return Config{}, fmt.Errorf("DEDUP_WINDOW must be positive, got %v", dedupWindow)
	}

	gatewayDBPath := strings.TrimSpace(os.Getenv("GATEWAY_DB_PATH"))

	nodeHardware := envOr("NODE_HARDWARE", "sim")
	switch nodeHardware {
	case "sim", "linux":
	default:
		return Config{}, fmt.Errorf("invalid NODE_HARDWARE %q (allowed: sim, linux)", nodeHardware)
	}

	counterPath := envOr("COUNTER_PATH", "luxtempmeter.db")

	simCyclesStr := envOr("SIM_CYCLES", "0")
	simCycles, err := strconv.Atoi(simCyclesStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SIM_CYCLES %q: %w", simCyclesStr, err)
	}
	if simCycles < 0 {
		return Config{}, fmt.Errorf("SIM_CYCLES must not be negative, got %d", simCycles)
	}

	// Empty keeps the node's own suspend duration.
	var simSleep time.Duration
	if s := strings.TrimSpace(os.Getenv("SIM_SLEEP")); s != "" {
		simSleep, err = time.ParseDuration(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIM_SLEEP %q: %w", s, err)
		}
		if simSleep < 0 {
			return Config{}, fmt.Errorf("SIM_SLEEP must not be negative, got %v", simSleep)
		}
	}

	i2cBus := strings.TrimSpace(os.Getenv("I2C_BUS"))
	dhtPin := envOr("DHT_PIN", "GPIO4")

	envSensor := envOr("ENV_SENSOR", "dht22")
	switch envSensor {
	case "dht22", "bme280":
	default:
		return Config{}, fmt.Errorf("invalid ENV_SENSOR %q (allowed: dht22, bme280)", envSensor)
	}

	bme280AddressStr := envOr("BME280_ADDRESS", "0x76")
	bme280Address, err := strconv.ParseUint(bme280AddressStr, 0, 16)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BME280_ADDRESS %q: %w", bme280AddressStr, err)
	}

	batteryMVStr := envOr("BATTERY_MV", "1950")
	batteryMV, err := strconv.ParseUint(batteryMVStr, 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BATTERY_MV %q: %w", batteryMVStr, err)
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		MQTTBroker:      mqttBroker,
		MQTTPort:        mqttPort,
		MQTTClientID:    mqttClientID,
		MQTTTopicPrefix: mqttTopicPrefix,
		HADiscovery:     haDiscovery,
		BLEAdapter:      bleAdapter,
		StationPrefix:   stationPrefix,
		DedupWindow:     dedupWindow,
		GatewayDBPath:   gatewayDBPath,
		NodeHardware:    nodeHardware,
		CounterPath:     counterPath,
		SimCycles:       simCycles,
		SimSleep:        simSleep,
		I2CBus:          i2cBus,
		DHTPin:          dhtPin,
		EnvSensor:       envSensor,
		BME280Address:   uint16(bme280Address),
		BatteryMV:       uint32(batteryMV),
	}, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
