// Package safe provides checked integer conversions used where heights and
// counts cross between RPC, storage and consensus types.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer kinds accepted by the converters.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// split returns the sign and magnitude of v.
func split[T Integer](v T) (negative bool, magnitude uint64) {
	if v < 0 {
		return true, uint64(-int64(v))
	}
	return false, uint64(v)
}

// Int32 converts v to int32, failing outside [MinInt32, MaxInt32].
func Int32[T Integer](v T) (int32, error) {
	negative, magnitude := split(v)
	if (negative && magnitude > -math.MinInt32) || (!negative && magnitude > math.MaxInt32) {
		return 0, fmt.Errorf("value %d out of int32 range", v)
	}
	return int32(v), nil
}

// Int64 converts v to int64, failing for unsigned values above MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	negative, magnitude := split(v)
	if !negative && magnitude > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// Uint32 converts v to uint32, failing for negatives and values above MaxUint32.
func Uint32[T Integer](v T) (uint32, error) {
	negative, magnitude := split(v)
	if negative || magnitude > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Uint64 converts v to uint64, failing for negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if negative, _ := split(v); negative {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}
