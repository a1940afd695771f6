package keys

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/tyler-smith/go-bip39"

	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/models"
)

// Service executes key-management operations. It depends only on the target
// network and keeps no state, so results are identical whether or not a
// wallet session exists.
type Service struct{}

type GenerateResult struct {
	Mnemonic    string `json:"mnemonic"`
	XPrv        string `json:"xprv"`
	Fingerprint string `json:"fingerprint"`
}

type RestoreResult struct {
	XPrv        string `json:"xprv"`
	Fingerprint string `json:"fingerprint"`
}

type DeriveResult struct {
	XPrv string `json:"xprv"`
	XPub string `json:"xpub"`
}

func (s *Service) Handle(network models.Network, op command.KeyOp) (interface{}, error) {
	switch op.Name {
	case "generate":
		return s.generate(network, op.WordCount, op.Password)
	case "restore":
		return s.restore(network, op.Mnemonic, op.Password)
	case "derive":
		return s.derive(network, op.XPrv, op.Path)
	default:
		return nil, fmt.Errorf("unknown key operation: %q", op.Name)
	}
}

func (s *Service) generate(network models.Network, wordCount int, password string) (*GenerateResult, error) {
	var bits int
	switch wordCount {
	case 12:
		bits = 128
	case 0, 24:
		bits = 256
	default:
		return nil, fmt.Errorf("word count must be 12 or 24, got %d", wordCount)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, fmt.Errorf("generate entropy failed: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic failed: %w", err)
	}

	restored, err := s.restore(network, mnemonic, password)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Mnemonic:    mnemonic,
		XPrv:        restored.XPrv,
		Fingerprint: restored.Fingerprint,
	}, nil
}

func (s *Service) restore(network models.Network, mnemonic, password string) (*RestoreResult, error) {
	params, err := network.ChainParams()
	if err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, password)
	if err != nil {
		return nil, fmt.Errorf("invalid recovery phrase: %w", err)
	}

	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("derive master key failed: %w", err)
	}

	fingerprint, err := keyFingerprint(master)
	if err != nil {
		return nil, err
	}

	return &RestoreResult{XPrv: master.String(), Fingerprint: fingerprint}, nil
}

func (s *Service) derive(network models.Network, xprv, path string) (*DeriveResult, error) {
	params, err := network.ChainParams()
	if err != nil {
		return nil, err
	}

	key, err := hdkeychain.NewKeyFromString(xprv)
	if err != nil {
		return nil, fmt.Errorf("parse extended key failed: %w", err)
	}
	if !key.IsPrivate() {
		return nil, fmt.Errorf("expected an extended private key")
	}
	if !key.IsForNet(params) {
		return nil, fmt.Errorf("extended key is not for network %s", network)
	}

	indexes, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	for _, idx := range indexes {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("derive child %d failed: %w", idx, err)
		}
	}

	xpub, err := key.Neuter()
	if err != nil {
		return nil, fmt.Errorf("neuter derived key failed: %w", err)
	}

	return &DeriveResult{XPrv: key.String(), XPub: xpub.String()}, nil
}

// parsePath parses a derivation path like m/84'/1'/0'. Both ' and h mark
// hardened components.
func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path %q: must start with m/", path)
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if part == "" {
			return nil, fmt.Errorf("invalid derivation path %q: empty component", path)
		}

		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") {
			hardened = true
			part = part[:len(part)-1]
		}

		idx, err := strconv.ParseUint(part, 10, 32)
		if err != nil || idx >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("invalid derivation path component %q", part)
		}

		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		indexes = append(indexes, uint32(idx))
	}

	return indexes, nil
}

func keyFingerprint(key *hdkeychain.ExtendedKey) (string, error) {
	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("extract public key failed: %w", err)
	}
	return hex.EncodeToString(btcutil.Hash160(pub.SerializeCompressed())[:4]), nil
}
