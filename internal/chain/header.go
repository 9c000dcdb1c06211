// Package chain holds the in-memory block index the retarget engine walks.
//
// Nodes are immutable once created, so a node and all of its ancestors can
// be read from any goroutine without synchronisation. The Index owns the
// mutable lookup structures and guards them with a lock.
package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ProofType distinguishes proof-of-work from proof-of-stake blocks.
type ProofType uint8

const (
	ProofOfWork ProofType = iota
	ProofOfStake
)

// ProofTypeOf maps the proof-of-stake flag to a ProofType.
func ProofTypeOf(proofOfStake bool) ProofType {
	if proofOfStake {
		return ProofOfStake
	}
	return ProofOfWork
}

func (p ProofType) String() string {
	switch p {
	case ProofOfWork:
		return "pow"
	case ProofOfStake:
		return "pos"
	default:
		return "unknown"
	}
}

// Header is the consensus view of a block header.
type Header struct {
	Hash         chainhash.Hash
	PrevHash     chainhash.Hash
	Height       int32
	Timestamp    int64
	Bits         uint32
	ProofOfStake bool
}

// ProofType returns the proof type of the header.
func (h Header) ProofType() ProofType {
	return ProofTypeOf(h.ProofOfStake)
}
