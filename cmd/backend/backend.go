package backend

import (
	"github.com/LLFourn/bdk-cli/blockchain"
	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/db"
	"github.com/LLFourn/bdk-cli/models"
)

// WalletOpts are the wallet-selection and backend options shared by every
// wallet command and the interactive session.
type WalletOpts struct {
	Wallet           string
	Descriptor       string
	ChangeDescriptor string
	Backend          blockchain.Opts
}

// WalletBuilder abstracts record-store and wallet construction so commands
// can be tested without touching disk or network.
type WalletBuilder interface {
	OpenStore(dataDir string) (*db.Store, error)
	OnlineWallet(opts WalletOpts, network models.Network, tree *db.Tree) (command.WalletHandle, error)
	OfflineWallet(opts WalletOpts, network models.Network, tree *db.Tree) (command.WalletHandle, error)
}

// KeyManager abstracts key-management operations.
type KeyManager interface {
	Handle(network models.Network, op command.KeyOp) (interface{}, error)
}
