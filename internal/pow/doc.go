// Package pow computes the required difficulty of HTMLCOIN blocks and checks
// block hashes against their claimed targets.
//
// Three retarget eras are selected by candidate height:
//
//   - below DiffChangeHeight both proof types use the windowed eHRC rule
//     (short, medium and long samples, damping, 9% limiter);
//   - from DiffChangeHeight proof-of-stake blocks follow an exponential
//     moving average of the stake spacing, switching to a power series
//     approximation of exp() from QIP9Height;
//   - from DiffChangeHeight proof-of-work blocks follow a 30 block
//     DarkGravity style moving average.
//
// Every historical quirk of these rules is part of consensus and is kept as
// is. All target arithmetic is unsigned 256-bit and wraps like the node's
// fixed-width integers. The functions are pure and safe for concurrent use
// as long as the chain.Node graph they walk is immutable.
package pow
