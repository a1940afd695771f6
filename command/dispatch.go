package command

import (
	"errors"

	"github.com/LLFourn/bdk-cli/models"
)

// WalletHandle is the wallet library's execution surface. Online returns
// whether a live backend is attached.
type WalletHandle interface {
	Online() bool
	HandleOnline(op OnlineWalletOp) (interface{}, error)
	HandleOffline(op OfflineWalletOp) (interface{}, error)
}

// KeyHandler is the key-management library's execution surface. It never
// reads wallet or session state.
type KeyHandler interface {
	Handle(network models.Network, op KeyOp) (interface{}, error)
}

// Session is the cross-cycle state of an interactive session: a wallet
// handle bound to a network and backend for the session's lifetime.
type Session struct {
	Wallet  WalletHandle
	Network models.Network
}

// Dispatcher routes a resolved request to exactly one handler family. It
// keeps no state between calls and borrows the session only for the call.
type Dispatcher struct {
	Keys    KeyHandler
	Network models.Network
}

// Dispatch executes req. Collaborator errors come back unchanged, wrapped in
// an *OpError naming the operation. No retries, no suppression.
func (d *Dispatcher) Dispatch(req Request, sess *Session) (interface{}, error) {
	switch op := req.(type) {
	case OnlineWalletOp:
		if sess == nil || sess.Wallet == nil {
			return nil, &OpError{Op: op.Name, Err: errors.New("no wallet session")}
		}
		if !sess.Wallet.Online() {
			return nil, &OpError{Op: op.Name, Err: errors.New("wallet backend is not connected")}
		}
		result, err := sess.Wallet.HandleOnline(op)
		if err != nil {
			return nil, &OpError{Op: op.Name, Err: err}
		}
		return result, nil

	case OfflineWalletOp:
		if sess == nil || sess.Wallet == nil {
			return nil, &OpError{Op: op.Name, Err: errors.New("no wallet session")}
		}
		result, err := sess.Wallet.HandleOffline(op)
		if err != nil {
			return nil, &OpError{Op: op.Name, Err: err}
		}
		return result, nil

	case KeyOp:
		if d.Keys == nil {
			return nil, &OpError{Op: op.Name, Err: errors.New("no key handler configured")}
		}
		result, err := d.Keys.Handle(d.Network, op)
		if err != nil {
			return nil, &OpError{Op: op.Name, Err: err}
		}
		return result, nil

	case Exit:
		// Exit signals loop termination and must be handled before dispatch.
		return nil, errors.New("exit cannot be dispatched")

	default:
		return nil, errors.New("unhandled request kind")
	}
}
