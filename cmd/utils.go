package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LLFourn/bdk-cli/cmd/backend"
	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/internal/config"
	"github.com/LLFourn/bdk-cli/models"
)

// activeNetwork resolves the --network flag and warns on mainnet use.
func activeNetwork() (models.Network, error) {
	network, err := models.ParseNetwork(flagNetwork)
	if err != nil {
		return "", err
	}

	zlog.Sugar().Debugf("network: %s", network)
	if network == models.NetworkBitcoin {
		zlog.Warn("This is experimental software and not currently recommended for use on Bitcoin mainnet, proceed with caution.")
	}

	return network, nil
}

func newDispatcher(network models.Network) *command.Dispatcher {
	return &command.Dispatcher{Keys: keyService, Network: network}
}

// buildWalletSession performs session setup shared by one-shot wallet
// commands and the interactive shell: open the record store, scope it to the
// named wallet, and construct the wallet handle.
func buildWalletSession(builder backend.WalletBuilder, online bool) (*command.Session, error) {
	network, err := activeNetwork()
	if err != nil {
		return nil, err
	}

	store, err := builder.OpenStore(config.GetConfig().General.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open record store failed: %w", err)
	}

	tree := store.Tree(walletOpts.Wallet)

	var handle command.WalletHandle
	if online {
		// the wallet and its backend share one store handle
		handle, err = builder.OnlineWallet(walletOpts, network, tree.Clone())
	} else {
		handle, err = builder.OfflineWallet(walletOpts, network, tree)
	}
	if err != nil {
		return nil, fmt.Errorf("construct wallet failed: %w", err)
	}

	return &command.Session{Wallet: handle, Network: network}, nil
}

// runWalletOp is the one-shot path: build a session, dispatch exactly one
// request, render, exit.
func runWalletOp(cmd *cobra.Command, builder backend.WalletBuilder, online bool, req command.Request) error {
	sess, err := buildWalletSession(builder, online)
	if err != nil {
		return err
	}
	return runRequest(cmd, sess, req)
}

func runRequest(cmd *cobra.Command, sess *command.Session, req command.Request) error {
	var network models.Network
	if sess != nil {
		network = sess.Network
	}

	dispatcher := newDispatcher(network)
	result, err := dispatcher.Dispatch(req, sess)
	if err != nil {
		command.RenderError(cmd.OutOrStdout(), err)
		return err
	}

	return command.RenderResult(cmd.OutOrStdout(), result)
}
