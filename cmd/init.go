package cmd

import (
	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/internal/config"
	"github.com/LLFourn/bdk-cli/internal/logger"
)

var (
	walletService = backend.Wallet{}
	keyService    = &backend.Keys{}
)

var zlog *logger.Logger

var flagNetwork string

func init() {
	zlog = logger.New("cmd")

	cfg := config.GetConfig()
	rootCmd.PersistentFlags().StringVarP(&flagNetwork, "network", "n", cfg.General.Network,
		"the network to use: bitcoin, testnet, signet or regtest")

	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(replCmd)
}
