package command

// Request is the closed set of commands the CLI understands. A value is
// always fully populated by the resolver; nothing partially built ever
// reaches the dispatcher.
type Request interface {
	request()
}

// OnlineWalletOp is a wallet operation that needs a connected backend.
type OnlineWalletOp struct {
	Name string `json:"name"`
	PSBT string `json:"psbt,omitempty"` // broadcast
}

func (OnlineWalletOp) request() {}

// Recipient is one create_tx output, parsed from "address:amount".
type Recipient struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// OfflineWalletOp is a wallet operation that works without a live backend.
type OfflineWalletOp struct {
	Name           string      `json:"name"`
	Recipients     []Recipient `json:"recipients,omitempty"`      // create_tx
	FeeRate        float64     `json:"fee_rate,omitempty"`        // create_tx
	ExternalPolicy string      `json:"external_policy,omitempty"` // create_tx
	PSBT           string      `json:"psbt,omitempty"`            // sign
}

func (OfflineWalletOp) request() {}

// KeyOp is a key-management operation. It needs no wallet session at all.
type KeyOp struct {
	Name      string `json:"name"`
	WordCount int    `json:"word_count,omitempty"` // generate
	Password  string `json:"password,omitempty"`   // generate, restore
	Mnemonic  string `json:"mnemonic,omitempty"`   // restore
	XPrv      string `json:"xprv,omitempty"`       // derive
	Path      string `json:"path,omitempty"`       // derive
}

func (KeyOp) request() {}

// Exit terminates the interactive session. It is never dispatched.
type Exit struct{}

func (Exit) request() {}
