//go:build !tinygo

package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadFromEnv_defaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "MQTT_BROKER", "MQTT_PORT", "MQTT_CLIENT_ID", "MQTT_TOPIC_PREFIX",
		"HA_DISCOVERY", "BLE_ADAPTER", "STATION_PREFIX", "DEDUP_WINDOW", "NODE_HARDWARE",
		"COUNTER_PATH", "SIM_CYCLES", "SIM_SLEEP", "I2C_BUS", "DHT_PIN", "ENV_SENSOR",
		"BME280_ADDRESS", "BATTERY_MV", "GATEWAY_DB_PATH",
	} {
		t.Setenv(k, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() err = %v; want nil", err)
	}
	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q; want dev", cfg.AppEnv)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v; want info", cfg.LogLevel)
	}
	if cfg.MQTTPort != 1883 {
		t.Errorf("MQTTPort = %d; want 1883", cfg.MQTTPort)
	}
	if cfg.MQTTTopicPrefix != "stations" {
		t.Errorf("MQTTTopicPrefix = %q; want stations", cfg.MQTTTopicPrefix)
	}
	if cfg.DedupWindow != time.Minute {
		t.Errorf("DedupWindow = %v; want 1m", cfg.DedupWindow)
	}
	if cfg.NodeHardware != "sim" {
		t.Errorf("NodeHardware = %q; want sim", cfg.NodeHardware)
	}
	if cfg.SimSleep != 0 {
		t.Errorf("SimSleep = %v; want 0", cfg.SimSleep)
	}
	if cfg.GatewayDBPath != "" {
		t.Errorf("GatewayDBPath = %q; want empty", cfg.GatewayDBPath)
	}
	if cfg.BME280Address != 0x76 {
		t.Errorf("BME280Address = %#x; want 0x76", cfg.BME280Address)
	}
}

func TestLoadFromEnv_overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MQTT_TOPIC_PREFIX", "home/sensors/")
	t.Setenv("HA_DISCOVERY", "true")
	t.Setenv("SIM_SLEEP", "2s")
	t.Setenv("ENV_SENSOR", "bme280")
	t.Setenv("BME280_ADDRESS", "0x77")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() err = %v; want nil", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v; want debug", cfg.LogLevel)
	}
	if cfg.MQTTTopicPrefix != "home/sensors" {
		t.Errorf("MQTTTopicPrefix = %q; want home/sensors", cfg.MQTTTopicPrefix)
	}
	if !cfg.HADiscovery {
		t.Error("HADiscovery = false; want true")
	}
	if cfg.SimSleep != 2*time.Second {
		t.Errorf("SimSleep = %v; want 2s", cfg.SimSleep)
	}
	if cfg.EnvSensor != "bme280" || cfg.BME280Address != 0x77 {
		t.Errorf("EnvSensor/BME280Address = %q/%#x; want bme280/0x77", cfg.EnvSensor, cfg.BME280Address)
	}
}

func TestLoadFromEnv_invalid(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":       "staging",
		"LOG_LEVEL":     "loud",
		"MQTT_PORT":     "abc",
		"DEDUP_WINDOW":  "0s",
		"NODE_HARDWARE": "esp32",
		"SIM_CYCLES":    "-1",
		"ENV_SENSOR":    "sht31",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("LoadFromEnv() with %s=%q err = nil; want error", key, val)
			}
		})
	}
}

func TestDefaultNode(t *testing.T) {
	n := DefaultNode()
	if n.Battery.Samples != 16 || n.Battery.SampleDelay != 2*time.Millisecond {
		t.Errorf("Battery = %+v; want 16 samples every 2ms", n.Battery)
	}
	if n.Environment.Attempts != 3 || n.Environment.RetryDelay != 50*time.Millisecond {
		t.Errorf("Environment = %+v; want 3 attempts with 50ms delay", n.Environment)
	}
	if n.Light.SettleDelay != 180*time.Millisecond {
		t.Errorf("Light.SettleDelay = %v; want 180ms", n.Light.SettleDelay)
	}
	if n.Radio.Burst != time.Second {
		t.Errorf("Radio.Burst = %v; want 1s", n.Radio.Burst)
	}
	if n.SleepDuration != 120*time.Second {
		t.Errorf("SleepDuration = %v; want 120s", n.SleepDuration)
	}
}
