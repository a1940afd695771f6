package wallet

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/LLFourn/bdk-cli/models"
)

type SyncResult struct {
	Height           int32 `json:"height"`
	ScannedAddresses int   `json:"scanned_addresses"`
	Transactions     int   `json:"transactions"`
}

type BalanceResult struct {
	Satoshi uint64 `json:"satoshi"`
}

type BroadcastResult struct {
	Txid string `json:"txid"`
}

// sync refreshes the record store from the backend: tip checkpoint, then
// history and unspent outputs for every derived address.
func (w *Wallet) sync() (*SyncResult, error) {
	tip, err := w.backend.TipHeight()
	if err != nil {
		return nil, err
	}

	if err := w.store.SaveCheckpoint(tip); err != nil {
		return nil, err
	}

	addresses, err := w.store.Addresses()
	if err != nil {
		return nil, err
	}

	txCount := 0
	for _, rec := range addresses {
		history, err := w.backend.AddressHistory(rec.Address)
		if err != nil {
			return nil, err
		}
		for _, entry := range history {
			if err := w.store.UpsertTx(entry.Txid, entry.Height); err != nil {
				return nil, err
			}
			txCount++
		}

		unspent, err := w.backend.AddressUnspent(rec.Address)
		if err != nil {
			return nil, err
		}
		utxos := make([]models.UtxoRecord, 0, len(unspent))
		for _, u := range unspent {
			utxos = append(utxos, models.UtxoRecord{
				Txid:  u.Txid,
				Vout:  u.Vout,
				Value: u.Value,
			})
		}
		if err := w.store.ReplaceUnspent(rec.Address, utxos); err != nil {
			return nil, err
		}
	}

	zlog.Sugar().Debugf("synced %d addresses at height %d", len(addresses), tip)

	return &SyncResult{
		Height:           tip,
		ScannedAddresses: len(addresses),
		Transactions:     txCount,
	}, nil
}

func (w *Wallet) balance() (*BalanceResult, error) {
	unspent, err := w.store.Unspent()
	if err != nil {
		return nil, err
	}

	var total uint64
	for _, u := range unspent {
		total += u.Value
	}

	return &BalanceResult{Satoshi: total}, nil
}

// broadcast submits a transaction to the backend. A base64 payload produced
// by create_tx must be finalized by sign first; anything else is passed to
// the backend verbatim as a raw transaction.
func (w *Wallet) broadcast(payload string) (*BroadcastResult, error) {
	if decoded, err := base64.StdEncoding.DecodeString(payload); err == nil {
		var d draftTx
		if json.Unmarshal(decoded, &d) == nil && len(d.Outputs) > 0 {
			if !d.Signed {
				return nil, fmt.Errorf("transaction is not finalized, sign it first")
			}
			payload = d.Raw
		}
	}

	txid, err := w.backend.Broadcast(payload)
	if err != nil {
		return nil, err
	}

	return &BroadcastResult{Txid: txid}, nil
}
