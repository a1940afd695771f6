package blockchain

import (
	"bufio"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"golang.org/x/net/proxy"
)

// ElectrumClient issues single-shot JSON-RPC requests against an Electrum
// server. Failed requests are retried up to the configured count; dials
// honor the configured timeout and optional SOCKS5 proxy.
type ElectrumClient struct {
	host    string
	useTLS  bool
	proxy   string
	retries int
	timeout time.Duration
	params  *chaincfg.Params
	nextID  uint64
}

func NewElectrumClient(cfg ElectrumConfig, params *chaincfg.Params) (*ElectrumClient, error) {
	host, useTLS, err := splitElectrumURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}

	zlog.Sugar().Debugf("electrum backend at %s, tls=%v, retries=%d", host, useTLS, retries)

	return &ElectrumClient{
		host:    host,
		useTLS:  useTLS,
		proxy:   cfg.Proxy,
		retries: retries,
		timeout: time.Duration(cfg.Timeout) * time.Second,
		params:  params,
	}, nil
}

func splitElectrumURL(url string) (host string, useTLS bool, err error) {
	switch {
	case strings.HasPrefix(url, "ssl://"):
		return strings.TrimPrefix(url, "ssl://"), true, nil
	case strings.HasPrefix(url, "tcp://"):
		return strings.TrimPrefix(url, "tcp://"), false, nil
	case url == "":
		return "", false, fmt.Errorf("electrum URL is empty")
	default:
		// bare host:port is treated as plain TCP
		return url, false, nil
	}
}

func (e *ElectrumClient) Kind() string { return "electrum" }

func (e *ElectrumClient) dial() (net.Conn, error) {
	var conn net.Conn
	var err error

	if e.proxy != "" {
		var dialer proxy.Dialer
		dialer, err = proxy.SOCKS5("tcp", e.proxy, nil, &net.Dialer{Timeout: e.timeout})
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy setup failed: %w", err)
		}
		conn, err = dialer.Dial("tcp", e.host)
	} else {
		conn, err = net.DialTimeout("tcp", e.host, e.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("dial electrum server %s failed: %w", e.host, err)
	}

	if e.useTLS {
		serverName, _, splitErr := net.SplitHostPort(e.host)
		if splitErr != nil {
			serverName = e.host
		}
		conn = tls.Client(conn, &tls.Config{ServerName: serverName})
	}

	return conn, nil
}

type electrumRequest struct {
	ID     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

type electrumResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (e *ElectrumClient) call(method string, params ...interface{}) (json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt < e.retries; attempt++ {
		result, err := e.callOnce(method, params)
		if err == nil {
			return result, nil
		}
		lastErr = err
		zlog.Sugar().Debugf("electrum %s attempt %d/%d failed: %v", method, attempt+1, e.retries, err)
	}

	return nil, lastErr
}

func (e *ElectrumClient) callOnce(method string, params []interface{}) (json.RawMessage, error) {
	conn, err := e.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if e.timeout > 0 {
		conn.SetDeadline(time.Now().Add(e.timeout))
	}

	e.nextID++
	if params == nil {
		params = []interface{}{}
	}
	req := electrumRequest{ID: e.nextID, Method: method, Params: params}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal electrum request failed: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write electrum request failed: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read electrum response failed: %w", err)
	}

	var resp electrumResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal electrum response failed: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("electrum server error: %s", resp.Error.Message)
	}

	return resp.Result, nil
}

// scripthash converts an address to the electrum script hash: the sha256 of
// its output script, byte-reversed, hex encoded.
func (e *ElectrumClient) scripthash(address string) (string, error) {
	addr, err := btcutil.DecodeAddress(address, e.params)
	if err != nil {
		return "", fmt.Errorf("decode address %q failed: %w", address, err)
	}

	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return "", fmt.Errorf("build output script failed: %w", err)
	}

	digest := sha256.Sum256(script)
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}

	return hex.EncodeToString(digest[:]), nil
}

func (e *ElectrumClient) TipHeight() (int32, error) {
	result, err := e.call("blockchain.headers.subscribe")
	if err != nil {
		return 0, err
	}

	var header struct {
		Height int32 `json:"height"`
	}
	if err := json.Unmarshal(result, &header); err != nil {
		return 0, fmt.Errorf("unmarshal header notification failed: %w", err)
	}

	return header.Height, nil
}

func (e *ElectrumClient) AddressHistory(address string) ([]TxEntry, error) {
	hash, err := e.scripthash(address)
	if err != nil {
		return nil, err
	}

	result, err := e.call("blockchain.scripthash.get_history", hash)
	if err != nil {
		return nil, err
	}

	var history []struct {
		Txid   string `json:"tx_hash"`
		Height int32  `json:"height"`
	}
	if err := json.Unmarshal(result, &history); err != nil {
		return nil, fmt.Errorf("unmarshal script history failed: %w", err)
	}

	entries := make([]TxEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, TxEntry{Txid: h.Txid, Height: h.Height})
	}
	return entries, nil
}

func (e *ElectrumClient) AddressUnspent(address string) ([]Unspent, error) {
	hash, err := e.scripthash(address)
	if err != nil {
		return nil, err
	}

	result, err := e.call("blockchain.scripthash.listunspent", hash)
	if err != nil {
		return nil, err
	}

	var unspent []struct {
		Txid   string `json:"tx_hash"`
		Pos    uint32 `json:"tx_pos"`
		Value  uint64 `json:"value"`
		Height int32  `json:"height"`
	}
	if err := json.Unmarshal(result, &unspent); err != nil {
		return nil, fmt.Errorf("unmarshal unspent list failed: %w", err)
	}

	utxos := make([]Unspent, 0, len(unspent))
	for _, u := range unspent {
		utxos = append(utxos, Unspent{Txid: u.Txid, Vout: u.Pos, Value: u.Value, Height: u.Height})
	}
	return utxos, nil
}

func (e *ElectrumClient) Broadcast(rawTx string) (string, error) {
	result, err := e.call("blockchain.transaction.broadcast", rawTx)
	if err != nil {
		return "", err
	}

	var txid string
	if err := json.Unmarshal(result, &txid); err != nil {
		return "", fmt.Errorf("unmarshal broadcast result failed: %w", err)
	}

	return txid, nil
}
