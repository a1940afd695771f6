package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/command"
)

var (
	flagCreateTo      []string
	flagCreateFeeRate float64
	flagCreatePolicy  string
	flagSignPSBT      string
)

func NewWalletNewAddressCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "get_new_address",
		Short: "Derive the next unused address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{Name: "get_new_address"})
		},
	}
}

func NewWalletListUnspentCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "list_unspent",
		Short: "List the wallet's unspent outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{Name: "list_unspent"})
		},
	}
}

func NewWalletListTransactionsCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "list_transactions",
		Short: "List the wallet's transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{Name: "list_transactions"})
		},
	}
}

func NewWalletPoliciesCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "Show the wallet's spending policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{Name: "policies"})
		},
	}
}

func NewWalletPublicDescriptorCmd(builder backend.WalletBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "public_descriptor",
		Short: "Show the wallet descriptors with public keys only",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{Name: "public_descriptor"})
		},
	}
}

func NewWalletCreateTxCmd(builder backend.WalletBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create_tx",
		Short: "Create an unsigned transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			recipients, err := command.ParseRecipients(flagCreateTo)
			if err != nil {
				return err
			}
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{
				Name:           "create_tx",
				Recipients:     recipients,
				FeeRate:        flagCreateFeeRate,
				ExternalPolicy: flagCreatePolicy,
			})
		},
	}

	cmd.Flags().StringArrayVar(&flagCreateTo, "to", nil, "recipient as address:amount")
	cmd.Flags().Float64Var(&flagCreateFeeRate, "fee_rate", 1.0, "fee rate in sat/vbyte")
	cmd.Flags().StringVar(&flagCreatePolicy, "external_policy", "", "policy path for the external keychain")
	cmd.MarkFlagRequired("to")

	return cmd
}

func NewWalletSignCmd(builder backend.WalletBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction created by create_tx",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalletOp(cmd, builder, false, command.OfflineWalletOp{
				Name: "sign",
				PSBT: flagSignPSBT,
			})
		},
	}

	cmd.Flags().StringVar(&flagSignPSBT, "psbt", "", "transaction to sign, base64 encoded")
	cmd.MarkFlagRequired("psbt")

	return cmd
}
