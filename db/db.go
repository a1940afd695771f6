package db

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/LLFourn/bdk-cli/models"
)

// Store is the persistent record store shared by every wallet on this
// machine. One sqlite file lives under the data directory; wallets see it
// through name-scoped trees.
type Store struct {
	db *gorm.DB
}

// Open creates the data directory if needed and opens (or creates) the
// wallet database inside it.
func Open(fs afero.Fs, dataDir string) (*Store, error) {
	exists, err := afero.DirExists(fs, dataDir)
	if err != nil {
		return nil, fmt.Errorf("stat data directory %s failed: %w", dataDir, err)
	}
	if !exists {
		zlog.Sugar().Infof("creating home directory %s", dataDir)
		if err := fs.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory %s failed: %w", dataDir, err)
		}
	}

	path := filepath.Join(dataDir, "wallet.db")
	return openAt(path)
}

// OpenInMemory backs the store with an in-memory database instead of a file
// under the data directory.
func OpenInMemory() (*Store, error) {
	return openAt("file::memory:?cache=shared")
}

func openAt(path string) (*Store, error) {
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = database.AutoMigrate(
		&models.AddressRecord{},
		&models.TxRecord{},
		&models.UtxoRecord{},
		&models.SyncCheckpoint{},
	)
	if err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	zlog.Debug("database opened successfully")
	return &Store{db: database}, nil
}

// Tree returns a view of the store scoped to one wallet name.
func (s *Store) Tree(wallet string) *Tree {
	return &Tree{db: s.db, wallet: wallet}
}

// Tree is a wallet-scoped view of the record store.
type Tree struct {
	db     *gorm.DB
	wallet string
}

// Clone returns a tree sharing the same underlying database handle. The
// session wallet and its backend both hold a clone of the same tree.
func (t *Tree) Clone() *Tree {
	return &Tree{db: t.db, wallet: t.wallet}
}

func (t *Tree) Wallet() string {
	return t.wallet
}

// NextAddressIndex returns the next unused derivation index for the
// keychain. Saving the derived address is what advances it.
func (t *Tree) NextAddressIndex(keychain string) (uint32, error) {
	var count int64
	err := t.db.Model(&models.AddressRecord{}).
		Where("wallet = ? AND keychain = ?", t.wallet, keychain).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count address records failed: %w", err)
	}
	return uint32(count), nil
}

func (t *Tree) SaveAddress(keychain string, index uint32, address string) error {
	rec := models.AddressRecord{
		Wallet:   t.wallet,
		Keychain: keychain,
		Index:    index,
		Address:  address,
	}
	if err := t.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("save address record failed: %w", err)
	}
	return nil
}

func (t *Tree) Addresses() ([]models.AddressRecord, error) {
	var recs []models.AddressRecord
	err := t.db.Where("wallet = ?", t.wallet).Order("keychain, `index`").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list address records failed: %w", err)
	}
	return recs, nil
}

func (t *Tree) UpsertTx(txid string, height int32) error {
	var rec models.TxRecord
	err := t.db.Where("wallet = ? AND txid = ?", t.wallet, txid).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.TxRecord{
			Wallet:    t.wallet,
			Txid:      txid,
			Height:    height,
			Timestamp: time.Now().Unix(),
		}
		return t.db.Create(&rec).Error
	}
	if err != nil {
		return fmt.Errorf("lookup tx record failed: %w", err)
	}

	rec.Height = height
	return t.db.Save(&rec).Error
}

func (t *Tree) Transactions() ([]models.TxRecord, error) {
	var recs []models.TxRecord
	err := t.db.Where("wallet = ?", t.wallet).Order("height").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list tx records failed: %w", err)
	}
	return recs, nil
}

func (t *Tree) ReplaceUnspent(address string, utxos []models.UtxoRecord) error {
	err := t.db.Where("wallet = ? AND address = ?", t.wallet, address).
		Delete(&models.UtxoRecord{}).Error
	if err != nil {
		return fmt.Errorf("clear utxo records failed: %w", err)
	}

	for i := range utxos {
		utxos[i].Wallet = t.wallet
		utxos[i].Address = address
		if err := t.db.Create(&utxos[i]).Error; err != nil {
			return fmt.Errorf("save utxo record failed: %w", err)
		}
	}
	return nil
}

func (t *Tree) Unspent() ([]models.UtxoRecord, error) {
	var recs []models.UtxoRecord
	err := t.db.Where("wallet = ? AND spent = ?", t.wallet, false).
		Order("value desc").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list utxo records failed: %w", err)
	}
	return recs, nil
}

func (t *Tree) SaveCheckpoint(height int32) error {
	var cp models.SyncCheckpoint
	err := t.db.Where("wallet = ?", t.wallet).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cp = models.SyncCheckpoint{Wallet: t.wallet, Height: height, SyncedAt: time.Now().Unix()}
		return t.db.Create(&cp).Error
	}
	if err != nil {
		return fmt.Errorf("lookup checkpoint failed: %w", err)
	}

	cp.Height = height
	cp.SyncedAt = time.Now().Unix()
	return t.db.Save(&cp).Error
}

func (t *Tree) Checkpoint() (*models.SyncCheckpoint, error) {
	var cp models.SyncCheckpoint
	err := t.db.Where("wallet = ?", t.wallet).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup checkpoint failed: %w", err)
	}
	return &cp, nil
}
