package pow

import (
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"github.com/holiman/uint256"
)

const darkGravityPastBlocks = 30

// darkGravityNextWork averages the targets of the last 30 work blocks,
// starting with last itself, and scales the average by the time they took.
func darkGravityNextWork(last *chain.Node, params *chaincfg.Params) uint32 {
	limit := params.TargetLimit(0, false)

	node := last
	avg := new(uint256.Int)
	for count := uint64(1); count <= darkGravityPastBlocks; count++ {
		target, _, _ := DecodeCompact(node.Bits())
		if count == 1 {
			avg.Set(target)
		} else {
			// Running weighted average, newest to oldest.
			avg.Mul(avg, uint256.NewInt(count))
			avg.Add(avg, target)
			avg.Div(avg, uint256.NewInt(count+1))
		}

		if count != darkGravityPastBlocks {
			if node.Parent() == nil {
				return EncodeCompact(limit)
			}
			node = LastOfType(node.Parent(), false)
		}
	}

	actual := last.Timestamp() - node.Timestamp()
	timespan := darkGravityPastBlocks * params.PowTargetSpacing
	if actual < timespan/3 {
		actual = timespan / 3
	}
	if actual > timespan*3 {
		actual = timespan * 3
	}

	avg.Mul(avg, uint256.NewInt(uint64(actual)))
	avg.Div(avg, uint256.NewInt(uint64(timespan)))

	if avg.IsZero() || avg.Gt(limit) {
		return EncodeCompact(limit)
	}
	return EncodeCompact(avg)
}
