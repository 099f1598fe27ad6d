//go:build !linux && !tinygo

package app

import (
	"errors"
	"log/slog"

	"github.com/Moshkopp/LuxTempMeter/internal/config"
)

func linuxHardware(config.Config, config.Node, *slog.Logger) (NodeHardware, error) {
	return NodeHardware{}, errors.New("linux node hardware is only available on linux")
}
