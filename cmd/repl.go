package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/repl"
)

var replCmd = NewReplCmd(walletService)

func NewReplCmd(builder backend.WalletBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Enter the interactive wallet shell",
		Long:  "Opens a persistent session against the selected wallet; accepts the same wallet and key operations per line, plus exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the shell keeps one online wallet for its whole lifetime
			sess, err := buildWalletSession(builder, true)
			if err != nil {
				return err
			}

			engine := repl.NewEngine(cmd.InOrStdin(), cmd.OutOrStdout(), newDispatcher(sess.Network), sess)

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			defer signal.Stop(interrupt)
			engine.SetInterrupt(interrupt)

			return engine.Run()
		},
	}

	bindWalletFlags(cmd.Flags())
	return cmd
}
