package pow

import (
	"fmt"

	"github.com/holiman/uint256"
)

func formatBits(bits uint32) string {
	return fmt.Sprintf("%08x", bits)
}

// decoded renders the target of bits as 64 hex digits.
func decoded(bits uint32) fmt.Stringer {
	target, _, _ := DecodeCompact(bits)
	return paddedTarget{value: target}
}

type paddedTarget struct {
	value *uint256.Int
}

func (t paddedTarget) String() string {
	return fmt.Sprintf("%064x", t.value.ToBig())
}
