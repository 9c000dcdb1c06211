package pow

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
)

var (
	ErrNegativeTarget   = errors.New("target is negative")
	ErrZeroTarget       = errors.New("target is zero")
	ErrTargetOverflow   = errors.New("target overflows 256 bits")
	ErrTargetAboveLimit = errors.New("target above proof limit")
	ErrHighHash         = errors.New("block hash above target")
)

// ValidateProofOfWork checks that bits is a well formed target within the
// proof limit and that hash does not exceed it.
func ValidateProofOfWork(hash chainhash.Hash, bits uint32, params *chaincfg.Params, proofType chain.ProofType) error {
	target, negative, overflow := DecodeCompact(bits)
	switch {
	case negative:
		return fmt.Errorf("bits %08x: %w", bits, ErrNegativeTarget)
	case overflow:
		return fmt.Errorf("bits %08x: %w", bits, ErrTargetOverflow)
	case target.IsZero():
		return fmt.Errorf("bits %08x: %w", bits, ErrZeroTarget)
	}

	if limit := params.ProofLimit(proofType); target.Gt(limit) {
		return fmt.Errorf("bits %08x above %s limit %08x: %w", bits, proofType, EncodeCompact(limit), ErrTargetAboveLimit)
	}

	if HashToTarget(hash).Gt(target) {
		return fmt.Errorf("hash %s above target %08x: %w", hash, bits, ErrHighHash)
	}
	return nil
}

// CheckProofOfWork reports whether ValidateProofOfWork accepts the block.
func CheckProofOfWork(hash chainhash.Hash, bits uint32, params *chaincfg.Params, proofType chain.ProofType) bool {
	return ValidateProofOfWork(hash, bits, params, proofType) == nil
}
