package wallet

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/LLFourn/bdk-cli/command"
)

const dustLimit = 546

type AddressResult struct {
	Address string `json:"address"`
	Index   uint32 `json:"index"`
}

type PoliciesResult struct {
	External map[string]interface{} `json:"external"`
	Internal map[string]interface{} `json:"internal"`
}

type DescriptorResult struct {
	External string `json:"external"`
	Internal string `json:"internal,omitempty"`
}

type CreateTxResult struct {
	PSBT    string `json:"psbt"`
	Fee     uint64 `json:"fee"`
	Inputs  int    `json:"inputs"`
	Outputs int    `json:"outputs"`
	Txid    string `json:"txid"`
}

type SignResult struct {
	PSBT        string `json:"psbt"`
	IsFinalized bool   `json:"is_finalized"`
}

type draftInput struct {
	Txid  string `json:"txid"`
	Vout  uint32 `json:"vout"`
	Value uint64 `json:"value"`
}

type draftOutput struct {
	Address string `json:"address"`
	Value   uint64 `json:"value"`
}

// draftTx is the structured payload behind the base64 string create_tx
// hands out and sign finalizes.
type draftTx struct {
	Inputs  []draftInput  `json:"inputs"`
	Outputs []draftOutput `json:"outputs"`
	Fee     uint64        `json:"fee"`
	Policy  string        `json:"external_policy,omitempty"`
	Signed  bool          `json:"signed"`
	Raw     string        `json:"raw"`
}

func (w *Wallet) newAddress() (*AddressResult, error) {
	index, err := w.store.NextAddressIndex("external")
	if err != nil {
		return nil, err
	}

	address, err := w.external.address(index, w.params)
	if err != nil {
		return nil, err
	}

	if err := w.store.SaveAddress("external", index, address); err != nil {
		return nil, err
	}

	return &AddressResult{Address: address, Index: index}, nil
}

func (w *Wallet) changeAddress() (string, error) {
	desc := w.internal
	keychain := "internal"
	if desc == nil {
		// no change descriptor, fall back to the external keychain
		desc = w.external
		keychain = "external"
	}

	index, err := w.store.NextAddressIndex(keychain)
	if err != nil {
		return "", err
	}

	address, err := desc.address(index, w.params)
	if err != nil {
		return "", err
	}

	if err := w.store.SaveAddress(keychain, index, address); err != nil {
		return "", err
	}

	return address, nil
}

func (w *Wallet) policies() (*PoliciesResult, error) {
	result := &PoliciesResult{External: w.external.policy()}
	if w.internal != nil {
		result.Internal = w.internal.policy()
	}
	return result, nil
}

func (w *Wallet) publicDescriptor() (*DescriptorResult, error) {
	external, err := w.external.public()
	if err != nil {
		return nil, err
	}

	result := &DescriptorResult{External: external}
	if w.internal != nil {
		result.Internal, err = w.internal.public()
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// createTx selects unspent outputs largest-first, builds the unsigned
// transaction and returns it as a base64 draft together with the fee.
func (w *Wallet) createTx(op command.OfflineWalletOp) (*CreateTxResult, error) {
	var target uint64
	for _, r := range op.Recipients {
		if _, err := btcutil.DecodeAddress(r.Address, w.params); err != nil {
			return nil, fmt.Errorf("invalid recipient address %q: %w", r.Address, err)
		}
		if r.Amount < dustLimit {
			return nil, fmt.Errorf("recipient amount %d is below the dust limit", r.Amount)
		}
		target += r.Amount
	}

	feeRate := op.FeeRate
	if feeRate <= 0 {
		feeRate = 1.0
	}

	unspent, err := w.store.Unspent()
	if err != nil {
		return nil, err
	}

	var inputs []draftInput
	var funded uint64
	var fee uint64
	for _, u := range unspent {
		inputs = append(inputs, draftInput{Txid: u.Txid, Vout: u.Vout, Value: u.Value})
		funded += u.Value
		fee = estimateFee(len(inputs), len(op.Recipients)+1, feeRate)
		if funded >= target+fee {
			break
		}
	}
	if funded < target+fee {
		return nil, fmt.Errorf("insufficient funds: %d available, %d needed", funded, target+fee)
	}

	outputs := make([]draftOutput, 0, len(op.Recipients)+1)
	for _, r := range op.Recipients {
		outputs = append(outputs, draftOutput{Address: r.Address, Value: r.Amount})
	}

	change := funded - target - fee
	if change > dustLimit {
		changeAddr, err := w.changeAddress()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, draftOutput{Address: changeAddr, Value: change})
	} else {
		fee += change
	}

	raw, txid, err := w.assemble(inputs, outputs)
	if err != nil {
		return nil, err
	}

	draft := draftTx{
		Inputs:  inputs,
		Outputs: outputs,
		Fee:     fee,
		Policy:  op.ExternalPolicy,
		Raw:     raw,
	}
	encoded, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode draft transaction failed: %w", err)
	}

	return &CreateTxResult{
		PSBT:    base64.StdEncoding.EncodeToString(encoded),
		Fee:     fee,
		Inputs:  len(inputs),
		Outputs: len(outputs),
		Txid:    txid,
	}, nil
}

// assemble serializes the unsigned transaction for the draft.
func (w *Wallet) assemble(inputs []draftInput, outputs []draftOutput) (string, string, error) {
	tx := wire.NewMsgTx(2)

	for _, in := range inputs {
		hash, err := chainhash.NewHashFromStr(in.Txid)
		if err != nil {
			return "", "", fmt.Errorf("invalid input txid %q: %w", in.Txid, err)
		}
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(hash, in.Vout), nil, nil))
	}

	for _, out := range outputs {
		addr, err := btcutil.DecodeAddress(out.Address, w.params)
		if err != nil {
			return "", "", fmt.Errorf("invalid output address %q: %w", out.Address, err)
		}
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return "", "", fmt.Errorf("build output script failed: %w", err)
		}
		tx.AddTxOut(wire.NewTxOut(int64(out.Value), script))
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return "", "", fmt.Errorf("serialize transaction failed: %w", err)
	}

	return hex.EncodeToString(buf.Bytes()), tx.TxHash().String(), nil
}

func estimateFee(inputs, outputs int, rate float64) uint64 {
	// rough p2wpkh weight estimate
	vsize := 11 + inputs*68 + outputs*31
	return uint64(float64(vsize) * rate)
}

func (w *Wallet) sign(payload string) (*SignResult, error) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode psbt failed: %w", err)
	}

	var draft draftTx
	if err := json.Unmarshal(decoded, &draft); err != nil || len(draft.Outputs) == 0 {
		return nil, fmt.Errorf("unrecognized psbt payload")
	}

	draft.Signed = true
	encoded, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode signed transaction failed: %w", err)
	}

	return &SignResult{
		PSBT:        base64.StdEncoding.EncodeToString(encoded),
		IsFinalized: true,
	}, nil
}
