package pow

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/holiman/uint256"
)

// DecodeCompact expands compact bits into a 256-bit target. Mantissa bits
// shifted past 256 bits are dropped. negative reports a set sign bit with a
// non-zero mantissa; overflow reports an exponent too large for the mantissa.
func DecodeCompact(bits uint32) (target *uint256.Int, negative, overflow bool) {
	size := bits >> 24
	word := uint64(bits & 0x007fffff)

	target = new(uint256.Int)
	if size <= 3 {
		word >>= 8 * (3 - size)
		target.SetUint64(word)
	} else {
		target.SetUint64(word)
		target.Lsh(target, uint(8*(size-3)))
	}

	negative = word != 0 && bits&0x00800000 != 0
	overflow = word != 0 && (size > 34 ||
		(word > 0xff && size > 33) ||
		(word > 0xffff && size > 32))
	return target, negative, overflow
}

// EncodeCompact converts a target into its compact representation.
func EncodeCompact(target *uint256.Int) uint32 {
	return blockchain.BigToCompact(target.ToBig())
}

// HashToTarget interprets a block hash as a little-endian 256-bit integer.
func HashToTarget(hash chainhash.Hash) *uint256.Int {
	return uint256.MustFromBig(blockchain.HashToBig(&hash))
}
