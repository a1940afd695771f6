package models

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network selects which bitcoin network wallet and key operations run against.
type Network string

const (
	NetworkBitcoin Network = "bitcoin"
	NetworkTestnet Network = "testnet"
	NetworkSignet  Network = "signet"
	NetworkRegtest Network = "regtest"
)

func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case NetworkBitcoin, NetworkTestnet, NetworkSignet, NetworkRegtest:
		return Network(s), nil
	default:
		return "", fmt.Errorf("unknown network: %q", s)
	}
}

// ChainParams maps the network to its btcsuite chain parameters.
func (n Network) ChainParams() (*chaincfg.Params, error) {
	switch n {
	case NetworkBitcoin:
		return &chaincfg.MainNetParams, nil
	case NetworkTestnet:
		return &chaincfg.TestNet3Params, nil
	case NetworkSignet:
		return &chaincfg.SigNetParams, nil
	case NetworkRegtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network: %q", string(n))
	}
}

func (n Network) String() string {
	return string(n)
}
