package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/LLFourn/bdk-cli/blockchain"
	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/db"
	"github.com/LLFourn/bdk-cli/models"
)

// Wallet binds a descriptor to a network, a record-store tree and, for
// online wallets, a blockchain backend. It implements command.WalletHandle.
type Wallet struct {
	external *descriptor
	internal *descriptor // change descriptor, may be nil
	network  models.Network
	params   *chaincfg.Params
	store    *db.Tree
	backend  blockchain.Backend
}

// New constructs an online wallet. Construction fails on an invalid
// descriptor, a missing store, or a missing backend.
func New(descriptorStr, changeDescriptorStr string, network models.Network, store *db.Tree, backend blockchain.Backend) (*Wallet, error) {
	w, err := NewOffline(descriptorStr, changeDescriptorStr, network, store)
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, fmt.Errorf("online wallet requires a backend")
	}

	w.backend = backend
	return w, nil
}

// NewOffline constructs a wallet without a backend. Online operations will
// be rejected by the dispatcher.
func NewOffline(descriptorStr, changeDescriptorStr string, network models.Network, store *db.Tree) (*Wallet, error) {
	if descriptorStr == "" {
		return nil, fmt.Errorf("wallet descriptor is required")
	}
	if store == nil {
		return nil, fmt.Errorf("wallet requires a record store")
	}

	params, err := network.ChainParams()
	if err != nil {
		return nil, err
	}

	external, err := parseDescriptor(descriptorStr, params)
	if err != nil {
		return nil, err
	}

	var internal *descriptor
	if changeDescriptorStr != "" {
		internal, err = parseDescriptor(changeDescriptorStr, params)
		if err != nil {
			return nil, fmt.Errorf("change descriptor: %w", err)
		}
	}

	return &Wallet{
		external: external,
		internal: internal,
		network:  network,
		params:   params,
		store:    store,
	}, nil
}

// Online reports whether a live backend is attached.
func (w *Wallet) Online() bool {
	return w.backend != nil
}

// HandleOnline executes one online wallet operation.
func (w *Wallet) HandleOnline(op command.OnlineWalletOp) (interface{}, error) {
	zlog.Sugar().Debugf("online wallet operation: %s", op.Name)

	switch op.Name {
	case "sync":
		return w.sync()
	case "get_balance":
		return w.balance()
	case "broadcast":
		return w.broadcast(op.PSBT)
	default:
		return nil, fmt.Errorf("unknown online wallet operation: %q", op.Name)
	}
}

// HandleOffline executes one offline wallet operation.
func (w *Wallet) HandleOffline(op command.OfflineWalletOp) (interface{}, error) {
	zlog.Sugar().Debugf("offline wallet operation: %s", op.Name)

	switch op.Name {
	case "get_new_address":
		return w.newAddress()
	case "list_unspent":
		return w.store.Unspent()
	case "list_transactions":
		return w.store.Transactions()
	case "policies":
		return w.policies()
	case "public_descriptor":
		return w.publicDescriptor()
	case "create_tx":
		return w.createTx(op)
	case "sign":
		return w.sign(op.PSBT)
	default:
		return nil, fmt.Errorf("unknown offline wallet operation: %q", op.Name)
	}
}
