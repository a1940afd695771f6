package wallet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// descriptorRegex accepts the single-key descriptor shapes this wallet
// supports: script(extendedkey/path/*) with an optional wildcard.
var descriptorRegex = regexp.MustCompile(`^(\w+)\(([A-Za-z0-9]+)((?:/\d+'?h?)*)(/\*)?\)$`)

// descriptor is a parsed single-key output descriptor. Full descriptor
// grammar belongs to the wallet library proper; this covers the common
// wpkh/pkh shapes the CLI works with.
type descriptor struct {
	script   string
	key      *hdkeychain.ExtendedKey
	path     []uint32
	wildcard bool
	raw      string
}

func parseDescriptor(raw string, params *chaincfg.Params) (*descriptor, error) {
	m := descriptorRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil, fmt.Errorf("unsupported descriptor: %q", raw)
	}

	script, keyStr, pathStr, wildcard := m[1], m[2], m[3], m[4] != ""

	switch script {
	case "wpkh", "pkh":
	default:
		return nil, fmt.Errorf("unsupported descriptor script type: %q", script)
	}

	key, err := hdkeychain.NewKeyFromString(keyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid extended key in descriptor: %w", err)
	}
	if !key.IsForNet(params) {
		return nil, fmt.Errorf("descriptor key is not for the configured network")
	}

	path, err := parseDescriptorPath(pathStr)
	if err != nil {
		return nil, err
	}

	return &descriptor{
		script:   script,
		key:      key,
		path:     path,
		wildcard: wildcard,
		raw:      raw,
	}, nil
}

func parseDescriptorPath(pathStr string) ([]uint32, error) {
	if pathStr == "" {
		return nil, nil
	}

	parts := strings.Split(strings.TrimPrefix(pathStr, "/"), "/")
	path := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		idx, err := strconv.ParseUint(part, 10, 32)
		if err != nil || idx >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("invalid descriptor path component %q", part)
		}
		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		path = append(path, uint32(idx))
	}

	return path, nil
}

// address derives the scriptpubkey address at the given wildcard index.
func (d *descriptor) address(index uint32, params *chaincfg.Params) (string, error) {
	key := d.key
	var err error

	for _, idx := range d.path {
		key, err = key.Derive(idx)
		if err != nil {
			return "", fmt.Errorf("derive descriptor path failed: %w", err)
		}
	}

	if d.wildcard {
		key, err = key.Derive(index)
		if err != nil {
			return "", fmt.Errorf("derive index %d failed: %w", index, err)
		}
	}

	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("extract public key failed: %w", err)
	}
	hash := btcutil.Hash160(pub.SerializeCompressed())

	switch d.script {
	case "wpkh":
		addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, params)
		if err != nil {
			return "", fmt.Errorf("build witness address failed: %w", err)
		}
		return addr.EncodeAddress(), nil
	case "pkh":
		addr, err := btcutil.NewAddressPubKeyHash(hash, params)
		if err != nil {
			return "", fmt.Errorf("build p2pkh address failed: %w", err)
		}
		return addr.EncodeAddress(), nil
	default:
		return "", fmt.Errorf("unsupported descriptor script type: %q", d.script)
	}
}

// public returns the descriptor with any private key material replaced by
// its public counterpart.
func (d *descriptor) public() (string, error) {
	if !d.key.IsPrivate() {
		return d.raw, nil
	}

	pub, err := d.key.Neuter()
	if err != nil {
		return "", fmt.Errorf("neuter descriptor key failed: %w", err)
	}

	// swap the embedded key, keep script type / path / wildcard intact
	m := descriptorRegex.FindStringSubmatch(strings.TrimSpace(d.raw))
	return fmt.Sprintf("%s(%s%s%s)", m[1], pub.String(), m[3], m[4]), nil
}

// policy reports the spending policy of the descriptor. Single-key
// descriptors always require exactly one signature.
func (d *descriptor) policy() map[string]interface{} {
	return map[string]interface{}{
		"type":        "signature",
		"fingerprint": keyFingerprintHex(d.key),
	}
}

func keyFingerprintHex(key *hdkeychain.ExtendedKey) string {
	pub, err := key.ECPubKey()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", btcutil.Hash160(pub.SerializeCompressed())[:4])
}
