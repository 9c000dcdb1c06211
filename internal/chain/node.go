package chain

import (
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Node is an entry of the block index. It is never mutated after creation.
type Node struct {
	hash         chainhash.Hash
	parent       *Node
	height       int32
	timestamp    int64
	bits         uint32
	proofOfStake bool
	workSum      *big.Int
}

// NewNode builds a node for header on top of parent. A nil parent makes the
// node a root. The header height is taken as is; Index.AddHeader is the
// place that enforces parent linkage.
func NewNode(header Header, parent *Node) *Node {
	work := blockchain.CalcWork(header.Bits)
	if parent != nil {
		work.Add(work, parent.workSum)
	}

	return &Node{
		hash:         header.Hash,
		parent:       parent,
		height:       header.Height,
		timestamp:    header.Timestamp,
		bits:         header.Bits,
		proofOfStake: header.ProofOfStake,
		workSum:      work,
	}
}

func (n *Node) Hash() chainhash.Hash { return n.hash }

// Parent returns the previous node or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Height() int32 { return n.height }

func (n *Node) Timestamp() int64 { return n.timestamp }

func (n *Node) Bits() uint32 { return n.bits }

func (n *Node) ProofOfStake() bool { return n.proofOfStake }

func (n *Node) ProofType() ProofType { return ProofTypeOf(n.proofOfStake) }

// WorkSum returns a copy of the cumulative chain work up to and including n.
func (n *Node) WorkSum() *big.Int {
	return new(big.Int).Set(n.workSum)
}

// Header rebuilds the consensus header of the node.
func (n *Node) Header() Header {
	h := Header{
		Hash:         n.hash,
		Height:       n.height,
		Timestamp:    n.timestamp,
		Bits:         n.bits,
		ProofOfStake: n.proofOfStake,
	}
	if n.parent != nil {
		h.PrevHash = n.parent.hash
	}
	return h
}

// Ancestor returns the ancestor of n at height, or nil when height is out of
// the [0, n.Height()] range.
func (n *Node) Ancestor(height int32) *Node {
	if height < 0 || height > n.height {
		return nil
	}

	node := n
	for node != nil && node.height > height {
		node = node.parent
	}
	return node
}
