package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/internal/config"
)

var walletOpts backend.WalletOpts

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet operations",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	bindWalletFlags(walletCmd.PersistentFlags())

	walletCmd.AddCommand(
		NewWalletSyncCmd(walletService),
		NewWalletBalanceCmd(walletService),
		NewWalletBroadcastCmd(walletService),
		NewWalletNewAddressCmd(walletService),
		NewWalletListUnspentCmd(walletService),
		NewWalletListTransactionsCmd(walletService),
		NewWalletPoliciesCmd(walletService),
		NewWalletPublicDescriptorCmd(walletService),
		NewWalletCreateTxCmd(walletService),
		NewWalletSignCmd(walletService),
	)
}

// bindWalletFlags registers the wallet-selection and backend flags. The
// interactive shell takes the same set as the wallet subcommands.
func bindWalletFlags(pf *pflag.FlagSet) {
	cfg := config.GetConfig()

	pf.StringVarP(&walletOpts.Wallet, "wallet", "w", "main", "selects the wallet to use")
	pf.StringVarP(&walletOpts.Descriptor, "descriptor", "d", "", "wallet output descriptor")
	pf.StringVarP(&walletOpts.ChangeDescriptor, "change_descriptor", "c", "", "wallet change output descriptor")
	pf.StringVarP(&walletOpts.Backend.Electrum, "server", "s", cfg.Electrum.URL, "electrum server to use")
	pf.StringVarP(&walletOpts.Backend.Proxy, "proxy", "p", cfg.Electrum.Proxy, "socks5 proxy for the electrum client")
	pf.IntVar(&walletOpts.Backend.Retries, "retries", cfg.Electrum.Retries, "electrum request retry count")
	pf.IntVar(&walletOpts.Backend.Timeout, "timeout", cfg.Electrum.Timeout, "electrum request timeout in seconds")
	pf.StringVarP(&walletOpts.Backend.Esplora, "esplora", "e", "", "esplora base url, overrides the electrum server when set")
	pf.IntVar(&walletOpts.Backend.EsploraParallel, "esplora_concurrency", cfg.Esplora.Concurrency, "parallel esplora requests")
}
