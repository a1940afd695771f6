package blockchain

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// EsploraClient talks to an Esplora REST instance. Requests are capped at the
// configured concurrency with a semaphore.
type EsploraClient struct {
	baseURL string
	client  *http.Client
	sem     chan struct{}
}

func NewEsploraClient(cfg EsploraConfig) (*EsploraClient, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("esplora base URL is empty")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("esplora base URL %q must start with http:// or https://", base)
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	zlog.Sugar().Debugf("esplora backend at %s, concurrency %d", base, cfg.Concurrency)

	return &EsploraClient{
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
		sem:     make(chan struct{}, cfg.Concurrency),
	}, nil
}

func (e *EsploraClient) Kind() string { return "esplora" }

func (e *EsploraClient) get(path string) ([]byte, error) {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	resp, err := e.client.Get(e.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("esplora request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read esplora response body failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esplora request %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func (e *EsploraClient) TipHeight() (int32, error) {
	body, err := e.get("/blocks/tip/height")
	if err != nil {
		return 0, err
	}

	height, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected tip height response %q: %w", string(body), err)
	}

	return int32(height), nil
}

func (e *EsploraClient) AddressHistory(address string) ([]TxEntry, error) {
	body, err := e.get("/address/" + address + "/txs")
	if err != nil {
		return nil, err
	}

	var entries []TxEntry
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		txid, err := jsonparser.GetString(value, "txid")
		if err != nil {
			return
		}
		height, _ := jsonparser.GetInt(value, "status", "block_height")
		entries = append(entries, TxEntry{Txid: txid, Height: int32(height)})
	})
	if err != nil {
		return nil, fmt.Errorf("cannot iterate over address history: %w", err)
	}

	return entries, nil
}

func (e *EsploraClient) AddressUnspent(address string) ([]Unspent, error) {
	body, err := e.get("/address/" + address + "/utxo")
	if err != nil {
		return nil, err
	}

	var utxos []Unspent
	_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		txid, err := jsonparser.GetString(value, "txid")
		if err != nil {
			return
		}
		vout, _ := jsonparser.GetInt(value, "vout")
		amount, _ := jsonparser.GetInt(value, "value")
		height, _ := jsonparser.GetInt(value, "status", "block_height")
		utxos = append(utxos, Unspent{
			Txid:   txid,
			Vout:   uint32(vout),
			Value:  uint64(amount),
			Height: int32(height),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("cannot iterate over unspent outputs: %w", err)
	}

	return utxos, nil
}

func (e *EsploraClient) Broadcast(rawTx string) (string, error) {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	resp, err := e.client.Post(e.baseURL+"/tx", "text/plain", strings.NewReader(rawTx))
	if err != nil {
		return "", fmt.Errorf("esplora broadcast failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read esplora broadcast response failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("esplora broadcast returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return strings.TrimSpace(string(body)), nil
}
