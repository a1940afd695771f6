package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLFourn/bdk-cli/command"
	"github.com/LLFourn/bdk-cli/models"
)

type MockKeyService struct {
	network models.Network
	ops     []command.KeyOp
	result  interface{}
	err     error
}

func (m *MockKeyService) Handle(network models.Network, op command.KeyOp) (interface{}, error) {
	m.network = network
	m.ops = append(m.ops, op)
	return m.result, m.err
}

func TestKeyGenerateCmd(t *testing.T) {
	flagNetwork = "testnet"
	buf := new(bytes.Buffer)

	mockKeys := &MockKeyService{result: map[string]string{
		"mnemonic":    "foo bar baz",
		"fingerprint": "9d6b6d16",
	}}

	cmd := NewKeyGenerateCmd(mockKeys)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--word_count", "12", "-p", "hunter2"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("error executing command: %v", err)
	}

	require.Len(t, mockKeys.ops, 1)
	assert.Equal(t, "generate", mockKeys.ops[0].Name)
	assert.Equal(t, 12, mockKeys.ops[0].WordCount)
	assert.Equal(t, "hunter2", mockKeys.ops[0].Password)
	assert.Equal(t, models.NetworkTestnet, mockKeys.network)
	assert.Contains(t, buf.String(), `"mnemonic": "foo bar baz"`)
}

func TestKeyRestoreCmd(t *testing.T) {
	flagNetwork = "testnet"
	buf := new(bytes.Buffer)

	mockKeys := &MockKeyService{result: map[string]string{"fingerprint": "9d6b6d16"}}

	cmd := NewKeyRestoreCmd(mockKeys)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"-m", "word1 word2 word3", "-p", "test! 123 -test"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("error executing command: %v", err)
	}

	require.Len(t, mockKeys.ops, 1)
	assert.Equal(t, "restore", mockKeys.ops[0].Name)
	assert.Equal(t, "word1 word2 word3", mockKeys.ops[0].Mnemonic)
	assert.Equal(t, "test! 123 -test", mockKeys.ops[0].Password)
}

func TestKeyRestoreCmdRequiresMnemonic(t *testing.T) {
	flagNetwork = "testnet"
	buf := new(bytes.Buffer)

	cmd := NewKeyRestoreCmd(&MockKeyService{})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestKeyDeriveCmd(t *testing.T) {
	flagNetwork = "testnet"
	buf := new(bytes.Buffer)

	mockKeys := &MockKeyService{result: map[string]string{"xpub": "tpub123"}}

	cmd := NewKeyDeriveCmd(mockKeys)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--xprv", "tprv123", "--path", "m/84'/1'/0'"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("error executing command: %v", err)
	}

	require.Len(t, mockKeys.ops, 1)
	assert.Equal(t, "derive", mockKeys.ops[0].Name)
	assert.Equal(t, "tprv123", mockKeys.ops[0].XPrv)
	assert.Equal(t, "m/84'/1'/0'", mockKeys.ops[0].Path)
	assert.Contains(t, buf.String(), "tpub123")
}

func TestKeyCmdRejectsBadNetwork(t *testing.T) {
	flagNetwork = "lightning"
	defer func() { flagNetwork = "testnet" }()

	cmd := NewKeyGenerateCmd(&MockKeyService{})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown network")
}
