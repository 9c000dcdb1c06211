package pow

import (
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"github.com/holiman/uint256"
)

// stakeNextWork moves the stake target toward the target spacing every
// block. last is the latest stake block and firstTime the timestamp of the
// stake block before it.
func stakeNextWork(last *chain.Node, firstTime int64, params *chaincfg.Params) uint32 {
	if params.PosNoRetargeting {
		return last.Bits()
	}

	height := last.Height() + 1
	spacing := params.PowTargetSpacing
	actual := last.Timestamp() - firstTime
	limit := params.TargetLimit(height, true)
	interval := params.DifficultyAdjustmentInterval(height)

	if actual < 0 {
		actual = spacing
	}

	target, _, _ := DecodeCompact(last.Bits())
	if height < params.QIP9Height {
		if actual > spacing*10 {
			actual = spacing * 10
		}
		target.Mul(target, uint256.NewInt(uint64(uint32((interval-1)*spacing+actual+actual))))
		target.Div(target, uint256.NewInt(uint64((interval+1)*spacing)))
	} else {
		if actual > spacing*20 {
			actual = spacing * 20
		}
		target = mulExp(target, 2*(actual-spacing)/16, (interval+1)*spacing/16)
	}

	if target.IsZero() || target.Gt(limit) {
		return EncodeCompact(limit)
	}
	return EncodeCompact(target)
}

// mulExp returns a*exp(p/q) for small |p/q| using the Taylor series. Terms
// are truncated at every step and the series ends once a term reaches zero.
// The multiplier is 32 bits wide like the node's uint256 scalar product.
func mulExp(a *uint256.Int, p, q int64) *uint256.Int {
	negative := p < 0
	absP := uint64(p)
	if negative {
		absP = uint64(-p)
	}

	multiplier := uint256.NewInt(uint64(uint32(absP)))
	divisor := uint256.NewInt(uint64(q))

	term := new(uint256.Int).Set(a)
	result := new(uint256.Int).Set(a)
	for n := uint64(1); !term.IsZero(); n++ {
		term.Mul(term, multiplier)
		term.Div(term, divisor)
		term.Div(term, uint256.NewInt(n))
		if negative && n%2 == 1 {
			result.Sub(result, term)
		} else {
			result.Add(result, term)
		}
	}
	return result
}
