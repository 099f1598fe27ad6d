//go:build !tinygo

package app

import (
	"context"
	"log/slog"

	"github.com/Moshkopp/LuxTempMeter/internal/ble"
	"github.com/Moshkopp/LuxTempMeter/internal/bthome"
	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/history"
	"github.com/Moshkopp/LuxTempMeter/internal/mqtt"
	"github.com/Moshkopp/LuxTempMeter/internal/receiver"
)

// RunGateway scans for node broadcasts and forwards them to MQTT until ctx
// is canceled.
func RunGateway(ctx context.Context, cfg config.Config) error {
	slog.Info("initializing gateway",
		"mqtt_broker", cfg.MQTTBroker,
		"mqtt_port", cfg.MQTTPort,
		"mqtt_client_id", cfg.MQTTClientID,
		"ble_adapter", cfg.BLEAdapter,
	)

	mqttClient, err := mqtt.NewClient(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer mqttClient.Disconnect()

	go func() {
		if err := mqttClient.Connect(ctx); err != nil {
			slog.Error("mqtt connect failed", "error", err)
		}
	}()

	var pub receiver.Publisher = mqttClient
	if cfg.GatewayDBPath != "" {
		db, err := history.Open(cfg.GatewayDBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		pub = &recordingPublisher{Publisher: mqttClient, repo: history.NewRepository(db), logger: slog.Default()}
		slog.Info("reading history enabled", "path", cfg.GatewayDBPath)
	}

	handler := receiver.NewHandler(pub, receiver.Options{
		StationPrefix: cfg.StationPrefix,
		DedupWindow:   cfg.DedupWindow,
		Discovery:     cfg.HADiscovery,
		Logger:        slog.Default(),
	})
	listener := ble.NewListener(ble.Options{
		Adapter: cfg.BLEAdapter,
		Filter:  ble.Filter{ServiceUUID: bthome.ServiceUUID},
		Logger:  slog.Default(),
	})
	go func() {
		if err := listener.Run(ctx, handler.HandleMatch); err != nil {
			slog.Warn("ble listener could not be initialized; gateway continues without BLE",
				"error", err,
			)
		}
	}()
	<-ctx.Done()

	slog.Info("gateway shutting down")
	return nil
}
