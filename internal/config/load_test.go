package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()
	cfg := GetConfig()

	assert.Equal(t, "testnet", cfg.General.Network)
	assert.Contains(t, cfg.General.DataDir, ".bdk-bitcoin")
	assert.Equal(t, "ssl://electrum.blockstream.info:60002", cfg.Electrum.URL)
	assert.Equal(t, 5, cfg.Electrum.Retries)
	assert.Equal(t, 0, cfg.Electrum.Timeout)
	assert.Equal(t, 4, cfg.Esplora.Concurrency)
}

func TestSetConfig(t *testing.T) {
	SetConfig("general.network", "regtest")
	assert.Equal(t, "regtest", GetConfig().General.Network)

	SetConfig("general.network", "testnet")
	assert.Equal(t, "testnet", GetConfig().General.Network)
}
