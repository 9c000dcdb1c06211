// Package rpcclient wraps the btcd JSON-RPC client for HTMLCOIN nodes with
// call metrics.
package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

type (
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// HeaderVerboseResult is the verbose getblockheader reply of a Qtum-family
// node. Flags is "proof-of-stake" or "proof-of-work".
type HeaderVerboseResult struct {
	btcjson.GetBlockHeaderVerboseResult
	Flags string `json:"flags"`
}

type ObservedClient struct {
	client     *rpcclient.Client
	rpcMetrics RPCMetrics
}

func NewObservedClient(client *rpcclient.Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// Dial builds an HTTP POST mode client for rawURL. Only plain http is
// supported.
func Dial(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

func (r *ObservedClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

// GetBlockHeaderVerbose issues a raw getblockheader call so the proof type
// flags the btcd result type lacks are kept.
func (r *ObservedClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *HeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header_verbose", err, started)
	}()

	hashParam, err := json.Marshal(blockHash.String())
	if err != nil {
		return nil, fmt.Errorf("marshal block hash: %w", err)
	}
	raw, err := r.client.RawRequest("getblockheader", []json.RawMessage{hashParam, json.RawMessage("true")})
	if err != nil {
		return nil, err
	}
	return decodeHeaderVerbose(raw)
}

func decodeHeaderVerbose(raw json.RawMessage) (*HeaderVerboseResult, error) {
	var res HeaderVerboseResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode block header: %w", err)
	}
	if res.Hash == "" {
		return nil, errors.New("decode block header: missing hash")
	}
	return &res, nil
}

// Shutdown stops the underlying client and waits for it to finish.
func (r *ObservedClient) Shutdown() {
	r.client.Shutdown()
	r.client.WaitForShutdown()
}
