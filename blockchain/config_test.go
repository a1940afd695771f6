package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigEsploraWins(t *testing.T) {
	cfg := BuildConfig(Opts{
		Electrum:        "ssl://electrum.blockstream.info:60002",
		Proxy:           "127.0.0.1:9050",
		Retries:         5,
		Esplora:         "https://blockstream.info/testnet/api",
		EsploraParallel: 8,
	})

	require.Equal(t, "esplora", cfg.Kind())
	esplora, ok := cfg.(EsploraConfig)
	require.True(t, ok)
	assert.Equal(t, "https://blockstream.info/testnet/api", esplora.BaseURL)
	assert.Equal(t, 8, esplora.Concurrency)
}

func TestBuildConfigElectrumDefault(t *testing.T) {
	cfg := BuildConfig(Opts{
		Electrum: "ssl://electrum.blockstream.info:60002",
		Retries:  5,
		Timeout:  10,
	})

	require.Equal(t, "electrum", cfg.Kind())
	electrum, ok := cfg.(ElectrumConfig)
	require.True(t, ok)
	assert.Equal(t, "ssl://electrum.blockstream.info:60002", electrum.URL)
	assert.Equal(t, 5, electrum.Retries)
	assert.Equal(t, 10, electrum.Timeout)
	assert.Empty(t, electrum.Proxy)
}

func TestBuildConfigEsploraConcurrencyDefault(t *testing.T) {
	cfg := BuildConfig(Opts{Esplora: "https://blockstream.info/testnet/api"})

	esplora := cfg.(EsploraConfig)
	assert.Equal(t, 4, esplora.Concurrency)
}

func TestBuildConfigElectrumProxyCarried(t *testing.T) {
	cfg := BuildConfig(Opts{
		Electrum: "tcp://localhost:50001",
		Proxy:    "127.0.0.1:9050",
	})

	electrum := cfg.(ElectrumConfig)
	assert.Equal(t, "127.0.0.1:9050", electrum.Proxy)
}

func TestNewBackendUnknownConfig(t *testing.T) {
	_, err := NewBackend(nil, nil)

	assert.Error(t, err)
}
