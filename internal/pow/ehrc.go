package pow

import (
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"github.com/holiman/uint256"
)

const (
	shortSample  = 15
	mediumSample = 200
	longSample   = 1000
)

// legacyNextWork is the enhanced hash rate compensation rule. last is the
// most recent block of the requested type. Sample times are kept in 32 bits.
func legacyNextWork(last *chain.Node, params *chaincfg.Params, proofOfStake bool) uint32 {
	if params.NoRetargeting(proofOfStake) {
		return last.Bits()
	}

	height := last.Height() + 1
	limit := params.TargetLimit(height, proofOfStake)
	timespan := int32(params.LegacyTimespan(height))

	var shortTime, mediumTime, longTime int32

	// i is the sample slot, j counts blocks of the requested type.
	node := last
	for i, j := 0, 0; j <= longSample+1; {
		parent := node.Parent()
		if parent == nil {
			return EncodeCompact(limit)
		}

		if node.ProofOfStake() == proofOfStake {
			j++
		}
		skip := parent.ProofOfStake() != proofOfStake

		node = parent

		if i < longSample {
			longTime = int32(node.Timestamp())
		}

		if skip {
			// Blocks up to DiffAdjustChangeHeight advance the slot on skipped
			// blocks as well.
			if height <= params.DiffAdjustChangeHeight {
				i++
			}
			continue
		}

		if i == shortSample-1 {
			shortTime = int32(node.Timestamp())
		}
		if i == mediumSample-1 {
			mediumTime = int32(node.Timestamp())
		}
		i++
	}

	lastTime := last.Timestamp()

	var shortSpan, mediumSpan, longSpan int32
	if d := lastTime - int64(shortTime); d != 0 {
		shortSpan = int32(d / shortSample)
	}
	if d := lastTime - int64(mediumTime); d != 0 {
		mediumSpan = int32(d / mediumSample)
	}
	if d := lastTime - int64(longTime); d != 0 {
		longSpan = int32(d / longSample)
	}

	var actual int32
	if sum := shortSpan + mediumSpan + longSpan; sum != 0 {
		actual = sum / 3
	}

	if last.Height() >= params.DiffDampingHeight {
		actual = (actual + 3*timespan) / 4
	}

	maxSpan := timespan * 494 / 453
	minSpan := timespan * 453 / 494
	if actual < minSpan {
		actual = minSpan
	}
	if actual > maxSpan {
		actual = maxSpan
	}

	target, _, _ := DecodeCompact(last.Bits())
	target.Mul(target, uint256.NewInt(uint64(uint32(actual))))
	target.Div(target, uint256.NewInt(uint64(uint32(timespan))))

	if target.IsZero() || target.Gt(limit) {
		return EncodeCompact(limit)
	}
	return EncodeCompact(target)
}
