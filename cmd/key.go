package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/command"
)

var (
	flagWordCount   int
	flagKeyPassword string
	flagMnemonic    string
	flagXPrv        string
	flagKeyPath     string
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Key management",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	keyCmd.AddCommand(
		NewKeyGenerateCmd(keyService),
		NewKeyRestoreCmd(keyService),
		NewKeyDeriveCmd(keyService),
	)
}

// runKeyOp dispatches a key operation with no wallet session at all; key
// operations depend only on the active network.
func runKeyOp(cmd *cobra.Command, keysvc backend.KeyManager, op command.KeyOp) error {
	network, err := activeNetwork()
	if err != nil {
		return err
	}

	dispatcher := &command.Dispatcher{Keys: keysvc, Network: network}
	result, err := dispatcher.Dispatch(op, nil)
	if err != nil {
		command.RenderError(cmd.OutOrStdout(), err)
		return err
	}

	return command.RenderResult(cmd.OutOrStdout(), result)
}

func NewKeyGenerateCmd(keysvc backend.KeyManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new recovery phrase and master key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeyOp(cmd, keysvc, command.KeyOp{
				Name:      "generate",
				WordCount: flagWordCount,
				Password:  flagKeyPassword,
			})
		},
	}

	cmd.Flags().IntVar(&flagWordCount, "word_count", 24, "mnemonic word count, 12 or 24")
	cmd.Flags().StringVarP(&flagKeyPassword, "password", "p", "", "seed password")

	return cmd
}

func NewKeyRestoreCmd(keysvc backend.KeyManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a master key from a recovery phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeyOp(cmd, keysvc, command.KeyOp{
				Name:     "restore",
				Mnemonic: flagMnemonic,
				Password: flagKeyPassword,
			})
		},
	}

	cmd.Flags().StringVarP(&flagMnemonic, "mnemonic", "m", "", "recovery phrase")
	cmd.Flags().StringVarP(&flagKeyPassword, "password", "p", "", "seed password")
	cmd.MarkFlagRequired("mnemonic")

	return cmd
}

func NewKeyDeriveCmd(keysvc backend.KeyManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a child key from an extended private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeyOp(cmd, keysvc, command.KeyOp{
				Name: "derive",
				XPrv: flagXPrv,
				Path: flagKeyPath,
			})
		},
	}

	cmd.Flags().StringVar(&flagXPrv, "xprv", "", "extended private key to derive from")
	cmd.Flags().StringVar(&flagKeyPath, "path", "", "derivation path, e.g. m/84'/1'/0'")
	cmd.MarkFlagRequired("xprv")
	cmd.MarkFlagRequired("path")

	return cmd
}
