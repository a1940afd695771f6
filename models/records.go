package models

// Record models persisted by the wallet database. Every record carries the
// wallet name so that multiple wallets share one database file, mirroring
// sub-trees keyed by wallet name.

type AddressRecord struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Wallet   string `json:"wallet" gorm:"index"`
	Keychain string `json:"keychain"` // "external" or "internal"
	Index    uint32 `json:"index"`
	Address  string `json:"address"`
}

type TxRecord struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Wallet    string `json:"wallet" gorm:"index"`
	Txid      string `json:"txid"`
	Height    int32  `json:"height"` // 0 while unconfirmed
	Timestamp int64  `json:"timestamp"`
}

type UtxoRecord struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Wallet  string `json:"wallet" gorm:"index"`
	Txid    string `json:"txid"`
	Vout    uint32 `json:"vout"`
	Value   uint64 `json:"value"` // in satoshi
	Address string `json:"address"`
	Spent   bool   `json:"spent"`
}

type SyncCheckpoint struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Wallet   string `json:"wallet" gorm:"uniqueIndex"`
	Height   int32  `json:"height"`
	SyncedAt int64  `json:"synced_at"`
}
