// Package node reads block headers from an HTMLCOIN node.
package node

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/htmlcoin-retarget/pkg/safe"
	"go.uber.org/ratelimit"
)

const (
	flagProofOfStake = "proof-of-stake"
	flagProofOfWork  = "proof-of-work"
)

// ErrUnknownProofType is returned for headers whose flags name neither
// proof type.
var ErrUnknownProofType = errors.New("unknown proof type flags")

// HeaderSource fetches headers by height over RPC, pacing calls with a rate
// limiter shared by all callers.
type HeaderSource struct {
	rpc     RPCClient
	limiter ratelimit.Limiter
	network model.Network
}

// NewHeaderSource limits the source to rps header fetches per second. A
// non-positive rps disables the limit.
func NewHeaderSource(rpc RPCClient, network model.Network, rps int) *HeaderSource {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &HeaderSource{rpc: rpc, limiter: limiter, network: network}
}

// LatestHeight returns the latest block height from the node.
func (s *HeaderSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchHeader returns the best-chain header at height.
func (s *HeaderSource) FetchHeader(ctx context.Context, height uint64) (model.Header, error) {
	if height > math.MaxInt32 {
		return model.Header{}, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return model.Header{}, err
	}

	s.limiter.Take()
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return model.Header{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.Header{}, fmt.Errorf("get block header %s: %w", hash, err)
	}

	header, err := ConvertHeader(src, s.network)
	if err != nil {
		return model.Header{}, err
	}
	if header.Height != height {
		return model.Header{}, fmt.Errorf("block header %s: height %d, requested %d", hash, header.Height, height)
	}
	return header, nil
}

// ConvertHeader maps a verbose RPC header onto the stored header row.
func ConvertHeader(src *rpcclient.HeaderVerboseResult, network model.Network) (model.Header, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Header{}, fmt.Errorf("block header %s height: %w", src.Hash, err)
	}
	bits, err := strconv.ParseUint(src.Bits, 16, 32)
	if err != nil {
		return model.Header{}, fmt.Errorf("block header %s bits %q: %w", src.Hash, src.Bits, err)
	}
	nonce, err := safe.Uint32(src.Nonce)
	if err != nil {
		return model.Header{}, fmt.Errorf("block header %s nonce: %w", src.Hash, err)
	}

	var proofType model.ProofType
	switch src.Flags {
	case flagProofOfStake:
		proofType = model.ProofOfStake
	case flagProofOfWork:
		proofType = model.ProofOfWork
	default:
		return model.Header{}, fmt.Errorf("block header %s flags %q: %w", src.Hash, src.Flags, ErrUnknownProofType)
	}

	return model.Header{
		Network:   network,
		Height:    height,
		Hash:      src.Hash,
		PrevHash:  src.PreviousHash,
		Timestamp: time.Unix(src.Time, 0).UTC(),
		Version:   src.Version,
		Bits:      uint32(bits),
		Nonce:     nonce,
		ProofType: proofType,
	}, nil
}
