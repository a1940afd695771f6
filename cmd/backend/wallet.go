package backend

import (
	"github.com/spf13/afero"

	"github.com/LLFourn/bdk-cli/blockchain"
	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/db"
	"github.com/LLFourn/bdk-cli/models"
	"github.com/LLFourn/bdk-cli/wallet"
)

type Wallet struct{}

func (Wallet) OpenStore(dataDir string) (*db.Store, error) {
	return db.Open(afero.NewOsFs(), dataDir)
}

func (Wallet) OnlineWallet(opts WalletOpts, network models.Network, tree *db.Tree) (command.WalletHandle, error) {
	params, err := network.ChainParams()
	if err != nil {
		return nil, err
	}

	cfg := blockchain.BuildConfig(opts.Backend)
	chain, err := blockchain.NewBackend(cfg, params)
	if err != nil {
		return nil, err
	}

	return wallet.New(opts.Descriptor, opts.ChangeDescriptor, network, tree, chain)
}

func (Wallet) OfflineWallet(opts WalletOpts, network models.Network, tree *db.Tree) (command.WalletHandle, error) {
	return wallet.NewOffline(opts.Descriptor, opts.ChangeDescriptor, network, tree)
}
