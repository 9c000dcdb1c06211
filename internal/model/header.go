package model

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/pkg/safe"
)

// ProofType is the persisted form of a block's proof type.
type ProofType string

var (
	// ProofOfWork marks a mined block.
	ProofOfWork ProofType = "pow"
	// ProofOfStake marks a staked block.
	ProofOfStake ProofType = "pos"
)

// Header is a block header row persisted to ClickHouse.
type Header struct {
	Network   Network
	Height    uint64
	Hash      string
	PrevHash  string
	Timestamp time.Time
	Version   int32
	Bits      uint32
	Nonce     uint32
	ProofType ProofType
}

// ChainHeader converts the stored row into the form consumed by the chain index.
func (h Header) ChainHeader() (chain.Header, error) {
	hash, err := chainhash.NewHashFromStr(h.Hash)
	if err != nil {
		return chain.Header{}, fmt.Errorf("header %d hash: %w", h.Height, err)
	}
	var prev chainhash.Hash
	if h.PrevHash != "" {
		p, err := chainhash.NewHashFromStr(h.PrevHash)
		if err != nil {
			return chain.Header{}, fmt.Errorf("header %d prev hash: %w", h.Height, err)
		}
		prev = *p
	}
	height, err := safe.Int32(h.Height)
	if err != nil {
		return chain.Header{}, fmt.Errorf("header height: %w", err)
	}

	var pos bool
	switch h.ProofType {
	case ProofOfWork:
	case ProofOfStake:
		pos = true
	default:
		return chain.Header{}, fmt.Errorf("header %d: unknown proof type %q", h.Height, h.ProofType)
	}

	return chain.Header{
		Hash:         *hash,
		PrevHash:     prev,
		Height:       height,
		Timestamp:    h.Timestamp.Unix(),
		Bits:         h.Bits,
		ProofOfStake: pos,
	}, nil
}
