package chain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrDuplicateHeader = errors.New("header already indexed")
	ErrUnknownParent   = errors.New("unknown parent header")
	ErrHeightMismatch  = errors.New("header height does not follow parent")
)

// Index stores every known node and tracks the best chain by cumulative work.
type Index struct {
	mu    sync.RWMutex
	nodes map[chainhash.Hash]*Node
	best  []*Node
}

func NewIndex() *Index {
	return &Index{
		nodes: make(map[chainhash.Hash]*Node),
	}
}

// AddHeader links header to its parent and inserts it. A header with a zero
// PrevHash is accepted as the root only while the index is empty.
func (idx *Index) AddHeader(header Header) (*Node, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.nodes[header.Hash]; ok {
		return nil, fmt.Errorf("add header %s: %w", header.Hash, ErrDuplicateHeader)
	}

	var parent *Node
	if header.PrevHash == (chainhash.Hash{}) {
		if len(idx.nodes) != 0 {
			return nil, fmt.Errorf("add header %s: second root: %w", header.Hash, ErrUnknownParent)
		}
		if header.Height != 0 {
			return nil, fmt.Errorf("add header %s: root at height %d: %w", header.Hash, header.Height, ErrHeightMismatch)
		}
	} else {
		var ok bool
		parent, ok = idx.nodes[header.PrevHash]
		if !ok {
			return nil, fmt.Errorf("add header %s: parent %s: %w", header.Hash, header.PrevHash, ErrUnknownParent)
		}
		if header.Height != parent.height+1 {
			return nil, fmt.Errorf("add header %s: height %d after parent %d: %w", header.Hash, header.Height, parent.height, ErrHeightMismatch)
		}
	}

	node := NewNode(header, parent)
	idx.nodes[node.hash] = node

	if tip := idx.tipLocked(); tip == nil || node.workSum.Cmp(tip.workSum) > 0 {
		idx.setTipLocked(node)
	}
	return node, nil
}

// setTipLocked makes node the best tip, rewriting the height slice back to
// the fork point with the previous best chain.
func (idx *Index) setTipLocked(node *Node) {
	size := int(node.height) + 1
	if size <= len(idx.best) {
		clear(idx.best[size:])
		idx.best = idx.best[:size]
	} else {
		idx.best = append(idx.best, make([]*Node, size-len(idx.best))...)
	}

	for n := node; n != nil && idx.best[n.height] != n; n = n.parent {
		idx.best[n.height] = n
	}
}

func (idx *Index) tipLocked() *Node {
	if len(idx.best) == 0 {
		return nil
	}
	return idx.best[len(idx.best)-1]
}

// LookupNode returns the node with the given hash or nil.
func (idx *Index) LookupNode(hash chainhash.Hash) *Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.nodes[hash]
}

// NodeAtHeight returns the best chain node at height or nil.
func (idx *Index) NodeAtHeight(height int32) *Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if height < 0 || int(height) >= len(idx.best) {
		return nil
	}
	return idx.best[height]
}

// Tip returns the best chain tip or nil for an empty index.
func (idx *Index) Tip() *Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.tipLocked()
}

// Len returns the number of indexed nodes, including side branches.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.nodes)
}
