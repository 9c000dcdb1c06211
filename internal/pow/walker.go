package pow

import "github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"

// LastOfType returns the nearest block at or below node whose proof type
// matches. When no such block exists the root is returned, so callers must
// inspect Parent() of the result before using it as history.
func LastOfType(node *chain.Node, proofOfStake bool) *chain.Node {
	for node != nil && node.Parent() != nil && node.ProofOfStake() != proofOfStake {
		node = node.Parent()
	}
	return node
}
