package pow

import (
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
)

// NextWorkRequired returns the compact target a block of the given proof type
// must meet when built on top of last. last may be nil for the genesis block.
// header is the candidate and is only read by the minimum difficulty gap
// rule; it may be nil.
func NextWorkRequired(last *chain.Node, header *chain.Header, params *chaincfg.Params, proofOfStake bool) uint32 {
	var height int32
	if last != nil {
		height = last.Height() + 1
	}
	limit := EncodeCompact(params.TargetLimit(height, proofOfStake))

	if last == nil {
		return limit
	}

	prev := LastOfType(last, proofOfStake)
	if prev.Parent() == nil {
		return limit
	}
	prevPrev := LastOfType(prev.Parent(), proofOfStake)
	if prevPrev.Parent() == nil {
		return limit
	}

	if params.NoRetargeting(proofOfStake) {
		return prev.Bits()
	}

	if params.PowAllowMinDifficultyBlocks && minDifficultyAllowed(last, header, params) {
		return limit
	}

	if uint32(height) >= params.DiffChangeHeight {
		if proofOfStake {
			return stakeNextWork(prev, prevPrev.Timestamp(), params)
		}
		return darkGravityNextWork(last, params)
	}

	return legacyNextWork(prev, params, proofOfStake)
}

// minDifficultyAllowed reports whether a min difficulty block may follow
// last. A zero MinDiffReductionTime allows it unconditionally.
func minDifficultyAllowed(last *chain.Node, header *chain.Header, params *chaincfg.Params) bool {
	if params.MinDiffReductionTime == 0 {
		return true
	}
	return header != nil && header.Timestamp > last.Timestamp()+params.MinDiffReductionTime
}
