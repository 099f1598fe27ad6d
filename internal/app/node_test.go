//go:build !tinygo

package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moshkopp/LuxTempMeter/internal/config"
	"github.com/Moshkopp/LuxTempMeter/internal/power"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		NodeHardware: "sim",
		CounterPath:  filepath.Join(t.TempDir(), "node.db"),
		SimCycles:    2,
		SimSleep:     time.Millisecond,
		BatteryMV:    1950,
	}
}

func TestRunNode_sim(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, RunNode(context.Background(), cfg))
	require.NoError(t, RunNode(context.Background(), cfg))

	store, err := power.NewBoltStore(cfg.CounterPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), got)
}

func TestRunNode_canceled(t *testing.T) {
	cfg := testConfig(t)
	cfg.SimCycles = 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, RunNode(ctx, cfg), context.Canceled)
}

func TestOpenHardware_unknown(t *testing.T) {
	cfg := testConfig(t)
	cfg.NodeHardware = "esp32"

	_, err := openHardware(cfg, config.DefaultNode(), nil)
	assert.Error(t, err)
}
