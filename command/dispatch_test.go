package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLFourn/bdk-cli/models"
)

type fakeWallet struct {
	online       bool
	onlineCalls  []OnlineWalletOp
	offlineCalls []OfflineWalletOp
	result       interface{}
	err          error
}

func (f *fakeWallet) Online() bool { return f.online }

func (f *fakeWallet) HandleOnline(op OnlineWalletOp) (interface{}, error) {
	f.onlineCalls = append(f.onlineCalls, op)
	return f.result, f.err
}

func (f *fakeWallet) HandleOffline(op OfflineWalletOp) (interface{}, error) {
	f.offlineCalls = append(f.offlineCalls, op)
	return f.result, f.err
}

type fakeKeys struct {
	network models.Network
	calls   []KeyOp
	result  interface{}
	err     error
}

func (f *fakeKeys) Handle(network models.Network, op KeyOp) (interface{}, error) {
	f.network = network
	f.calls = append(f.calls, op)
	return f.result, f.err
}

func TestDispatchOnlineOp(t *testing.T) {
	wallet := &fakeWallet{online: true, result: "synced"}
	d := &Dispatcher{Network: models.NetworkTestnet}
	sess := &Session{Wallet: wallet, Network: models.NetworkTestnet}

	result, err := d.Dispatch(OnlineWalletOp{Name: "sync"}, sess)

	require.NoError(t, err)
	assert.Equal(t, "synced", result)
	require.Len(t, wallet.onlineCalls, 1)
	assert.Equal(t, "sync", wallet.onlineCalls[0].Name)
}

func TestDispatchOnlineOpRequiresSession(t *testing.T) {
	d := &Dispatcher{Network: models.NetworkTestnet}

	_, err := d.Dispatch(OnlineWalletOp{Name: "sync"}, nil)

	var oerr *OpError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "sync", oerr.Op)
}

func TestDispatchOnlineOpRequiresBackend(t *testing.T) {
	wallet := &fakeWallet{online: false}
	d := &Dispatcher{Network: models.NetworkTestnet}
	sess := &Session{Wallet: wallet, Network: models.NetworkTestnet}

	_, err := d.Dispatch(OnlineWalletOp{Name: "get_balance"}, sess)

	var oerr *OpError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "get_balance", oerr.Op)
	assert.Contains(t, err.Error(), "not connected")
	// the handler was never reached
	assert.Empty(t, wallet.onlineCalls)
}

func TestDispatchOfflineOp(t *testing.T) {
	wallet := &fakeWallet{result: "addr"}
	d := &Dispatcher{Network: models.NetworkTestnet}
	sess := &Session{Wallet: wallet, Network: models.NetworkTestnet}

	result, err := d.Dispatch(OfflineWalletOp{Name: "get_new_address"}, sess)

	require.NoError(t, err)
	assert.Equal(t, "addr", result)
	require.Len(t, wallet.offlineCalls, 1)
}

func TestDispatchOfflineOpRequiresSession(t *testing.T) {
	d := &Dispatcher{Network: models.NetworkTestnet}

	_, err := d.Dispatch(OfflineWalletOp{Name: "policies"}, nil)

	var oerr *OpError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "policies", oerr.Op)
}

func TestDispatchWrapsCollaboratorError(t *testing.T) {
	cause := errors.New("electrum: connection refused")
	wallet := &fakeWallet{online: true, err: cause}
	d := &Dispatcher{Network: models.NetworkTestnet}
	sess := &Session{Wallet: wallet, Network: models.NetworkTestnet}

	_, err := d.Dispatch(OnlineWalletOp{Name: "broadcast"}, sess)

	var oerr *OpError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "broadcast", oerr.Op)
	// the underlying error survives unchanged
	assert.ErrorIs(t, err, cause)
}

func TestDispatchKeyOpIgnoresSession(t *testing.T) {
	keys := &fakeKeys{result: "mnemonic"}
	d := &Dispatcher{Keys: keys, Network: models.NetworkRegtest}

	withSession, err := d.Dispatch(KeyOp{Name: "generate", WordCount: 12}, &Session{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	withoutSession, err := d.Dispatch(KeyOp{Name: "generate", WordCount: 12}, nil)
	require.NoError(t, err)

	assert.Equal(t, withSession, withoutSession)
	assert.Len(t, keys.calls, 2)
	// the dispatcher's network is passed through, not the session's
	assert.Equal(t, models.NetworkRegtest, keys.network)
}

func TestDispatchKeyOpWithoutHandler(t *testing.T) {
	d := &Dispatcher{Network: models.NetworkTestnet}

	_, err := d.Dispatch(KeyOp{Name: "generate"}, nil)

	var oerr *OpError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "generate", oerr.Op)
}

func TestDispatchExitRejected(t *testing.T) {
	d := &Dispatcher{Network: models.NetworkTestnet}

	_, err := d.Dispatch(Exit{}, nil)

	assert.Error(t, err)
	var oerr *OpError
	assert.False(t, errors.As(err, &oerr))
}
