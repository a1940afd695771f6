package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Config is the resolved network-backend configuration. Exactly one variant
// is ever active per session.
type Config interface {
	Kind() string
}

type ElectrumConfig struct {
	URL     string `json:"url"`
	Proxy   string `json:"proxy,omitempty"`
	Retries int    `json:"retries"`
	Timeout int    `json:"timeout"`
}

func (ElectrumConfig) Kind() string { return "electrum" }

type EsploraConfig struct {
	BaseURL     string `json:"base_url"`
	Concurrency int    `json:"concurrency"`
}

func (EsploraConfig) Kind() string { return "esplora" }

// Opts carries the backend options supplied on the command line. Electrum
// options always have defaults; the Esplora base URL is optional.
type Opts struct {
	Electrum        string
	Proxy           string
	Retries         int
	Timeout         int
	Esplora         string
	EsploraParallel int
}

// BuildConfig resolves the effective backend configuration. An Esplora base
// URL, when supplied, always wins over the Electrum options. The Electrum
// options carry defaults, so building never fails.
func BuildConfig(opts Opts) Config {
	if opts.Esplora != "" {
		concurrency := opts.EsploraParallel
		if concurrency <= 0 {
			concurrency = 4
		}
		return EsploraConfig{BaseURL: opts.Esplora, Concurrency: concurrency}
	}

	return ElectrumConfig{
		URL:     opts.Electrum,
		Proxy:   opts.Proxy,
		Retries: opts.Retries,
		Timeout: opts.Timeout,
	}
}

// TxEntry is one confirmed or pending transaction touching an address.
type TxEntry struct {
	Txid   string `json:"txid"`
	Height int32  `json:"height"`
}

// Unspent is one unspent output paying to an address.
type Unspent struct {
	Txid   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Value  uint64 `json:"value"`
	Height int32  `json:"height"`
}

// Backend is the narrow surface the wallet consumes. The wire protocols
// behind it are not this package's concern beyond issuing requests.
type Backend interface {
	Kind() string
	TipHeight() (int32, error)
	AddressHistory(address string) ([]TxEntry, error)
	AddressUnspent(address string) ([]Unspent, error)
	Broadcast(rawTx string) (string, error)
}

// NewBackend constructs the client for a resolved configuration.
func NewBackend(cfg Config, params *chaincfg.Params) (Backend, error) {
	switch c := cfg.(type) {
	case EsploraConfig:
		return NewEsploraClient(c)
	case ElectrumConfig:
		return NewElectrumClient(c, params)
	default:
		return nil, fmt.Errorf("unknown backend configuration %T", cfg)
	}
}
