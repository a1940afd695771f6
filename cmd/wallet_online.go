package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/command"
)

var flagBroadcastPSBT string

func NewWalletSyncCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync the wallet with the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, true, command.OnlineWalletOp{Name: "sync"})
		},
	}
}

func NewWalletBalanceCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "get_balance",
		Short: "Return the wallet's spendable balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, true, command.OnlineWalletOp{Name: "get_balance"})
		},
	}
}

func NewWalletBroadcastCmd(builder backend.WalletBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Broadcast a finalized transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, true, command.OnlineWalletOp{
				Name: "broadcast",
				PSBT: flagBroadcastPSBT,
			})
		},
	}

	cmd.Flags().StringVar(&flagBroadcastPSBT, "psbt", "", "transaction to broadcast")
	cmd.MarkFlagRequired("psbt")

	return cmd
}
