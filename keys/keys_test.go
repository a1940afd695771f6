package keys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/models"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestRestoreKnownMnemonic(t *testing.T) {
	svc := &Service{}

	result, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: testMnemonic})
	require.NoError(t, err)

	restored, ok := result.(*RestoreResult)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(restored.XPrv, "tprv"), "testnet key should be a tprv, got %s", restored.XPrv)
	assert.Equal(t, "73c5da0a", restored.Fingerprint)
}

func TestRestorePasswordChangesKey(t *testing.T) {
	svc := &Service{}

	plain, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: testMnemonic})
	require.NoError(t, err)

	withPassword, err := svc.Handle(models.NetworkTestnet, command.KeyOp{
		Name:     "restore",
		Mnemonic: testMnemonic,
		Password: "test! 123 -test",
	})
	require.NoError(t, err)

	assert.NotEqual(t, plain.(*RestoreResult).XPrv, withPassword.(*RestoreResult).XPrv)
}

func TestRestoreInvalidMnemonic(t *testing.T) {
	svc := &Service{}

	_, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: "not a valid phrase"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recovery phrase")
}

func TestGenerateRoundTrip(t *testing.T) {
	svc := &Service{}

	result, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "generate", WordCount: 12})
	require.NoError(t, err)

	generated, ok := result.(*GenerateResult)
	require.True(t, ok)
	assert.Len(t, strings.Fields(generated.Mnemonic), 12)

	// restoring the generated phrase reproduces the same key
	restored, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: generated.Mnemonic})
	require.NoError(t, err)
	assert.Equal(t, generated.XPrv, restored.(*RestoreResult).XPrv)
	assert.Equal(t, generated.Fingerprint, restored.(*RestoreResult).Fingerprint)
}

func TestGenerateDefaultsTo24Words(t *testing.T) {
	svc := &Service{}

	result, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "generate"})
	require.NoError(t, err)

	assert.Len(t, strings.Fields(result.(*GenerateResult).Mnemonic), 24)
}

func TestGenerateRejectsBadWordCount(t *testing.T) {
	svc := &Service{}

	_, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "generate", WordCount: 13})

	assert.Error(t, err)
}

func TestDerive(t *testing.T) {
	svc := &Service{}

	restored, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: testMnemonic})
	require.NoError(t, err)
	xprv := restored.(*RestoreResult).XPrv

	result, err := svc.Handle(models.NetworkTestnet, command.KeyOp{
		Name: "derive",
		XPrv: xprv,
		Path: "m/84'/1'/0'",
	})
	require.NoError(t, err)

	derived, ok := result.(*DeriveResult)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(derived.XPrv, "tprv"))
	assert.True(t, strings.HasPrefix(derived.XPub, "tpub"))
	assert.NotEqual(t, xprv, derived.XPrv)
}

func TestDeriveHSuffixEqualsApostrophe(t *testing.T) {
	svc := &Service{}

	restored, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: testMnemonic})
	require.NoError(t, err)
	xprv := restored.(*RestoreResult).XPrv

	apostrophe, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "derive", XPrv: xprv, Path: "m/84'/1'/0'"})
	require.NoError(t, err)
	hSuffix, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "derive", XPrv: xprv, Path: "m/84h/1h/0h"})
	require.NoError(t, err)

	assert.Equal(t, apostrophe, hSuffix)
}

func TestDeriveRejectsWrongNetwork(t *testing.T) {
	svc := &Service{}

	restored, err := svc.Handle(models.NetworkBitcoin, command.KeyOp{Name: "restore", Mnemonic: testMnemonic})
	require.NoError(t, err)

	_, err = svc.Handle(models.NetworkTestnet, command.KeyOp{
		Name: "derive",
		XPrv: restored.(*RestoreResult).XPrv,
		Path: "m/84'/1'/0'",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not for network")
}

func TestDeriveRejectsPublicKey(t *testing.T) {
	svc := &Service{}

	restored, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "restore", Mnemonic: testMnemonic})
	require.NoError(t, err)

	derived, err := svc.Handle(models.NetworkTestnet, command.KeyOp{
		Name: "derive",
		XPrv: restored.(*RestoreResult).XPrv,
		Path: "m/84'/1'/0'",
	})
	require.NoError(t, err)

	_, err = svc.Handle(models.NetworkTestnet, command.KeyOp{
		Name: "derive",
		XPrv: derived.(*DeriveResult).XPub,
		Path: "m/0",
	})

	assert.Error(t, err)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []uint32
		wantErr bool
	}{
		{path: "m", want: []uint32{}},
		{path: "m/0", want: []uint32{0}},
		{path: "m/84'/1'/0'", want: []uint32{0x80000054, 0x80000001, 0x80000000}},
		{path: "m/84h/1h/0h/0/5", want: []uint32{0x80000054, 0x80000001, 0x80000000, 0, 5}},
		{path: "", wantErr: true},
		{path: "84'/1'", wantErr: true},
		{path: "m//0", wantErr: true},
		{path: "m/abc", wantErr: true},
		{path: "m/2147483648", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parsePath(tc.path)
		if tc.wantErr {
			assert.Error(t, err, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestHandleUnknownOp(t *testing.T) {
	svc := &Service{}

	_, err := svc.Handle(models.NetworkTestnet, command.KeyOp{Name: "rotate"})

	assert.Error(t, err)
}
