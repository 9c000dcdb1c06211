// Package validator checks stored header chains against the retarget rules.
package validator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultWorkers   = 4
	defaultChunkSize = 2000
)

// Validator recomputes the required bits of indexed headers and verifies the
// hashes of proof-of-work headers.
type Validator struct {
	index     *chain.Index
	calc      Calculator
	metrics   Metrics
	logger    *zap.Logger
	workers   int
	chunkSize int32
}

type Option func(*Validator)

// WithWorkers sets how many height chunks are validated concurrently.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.workers = n
		}
	}
}

// WithChunkSize sets the number of consecutive heights one worker validates.
func WithChunkSize(n int32) Option {
	return func(v *Validator) {
		if n > 0 {
			v.chunkSize = n
		}
	}
}

func New(index *chain.Index, calc Calculator, metrics Metrics, logger *zap.Logger, opts ...Option) *Validator {
	v := &Validator{
		index:     index,
		calc:      calc,
		metrics:   metrics,
		logger:    logger.Named("validator"),
		workers:   defaultWorkers,
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateHeader checks node against the difficulty required on top of its
// parent and, for proof-of-work headers, checks the hash against the bits.
func (v *Validator) ValidateHeader(node *chain.Node) (err error) {
	started := time.Now()
	defer func() {
		v.metrics.ObserveHeader(node.ProofType().String(), err, started)
	}()

	header := node.Header()
	want := v.calc.NextWorkRequired(node.Parent(), &header, node.ProofOfStake())
	if want != node.Bits() {
		return &ConsensusError{
			Height: node.Height(),
			Hash:   node.Hash(),
			Err:    fmt.Errorf("%s bits %08x, required %08x: %w", node.ProofType(), node.Bits(), want, ErrBadDifficulty),
		}
	}

	if node.ProofType() == chain.ProofOfWork {
		if err := v.calc.ValidateProofOfWork(node.Hash(), node.Bits(), chain.ProofOfWork); err != nil {
			return &ConsensusError{Height: node.Height(), Hash: node.Hash(), Err: err}
		}
	}
	return nil
}

type span struct {
	from, to int32
}

// ValidateRange validates best chain heights [from, to]. Chunks of heights
// run concurrently; the returned *ConsensusError is the lowest failing
// height in the range.
func (v *Validator) ValidateRange(ctx context.Context, from, to int32) error {
	tip := v.index.Tip()
	if from < 0 || to < from || tip == nil || to > tip.Height() {
		return fmt.Errorf("validate range %d-%d: %w", from, to, ErrOutOfRange)
	}

	spans := make([]span, 0, (to-from)/v.chunkSize+1)
	for start := from; start <= to; {
		end := min(start+v.chunkSize-1, to)
		spans = append(spans, span{from: start, to: end})
		if end == to {
			break
		}
		start = end + 1
	}

	var (
		mu    sync.Mutex
		first *ConsensusError
	)
	failedBelow := func(height int32) bool {
		mu.Lock()
		defer mu.Unlock()
		return first != nil && first.Height < height
	}

	err := workerpool.Process(ctx, v.workers, spans, func(ctx context.Context, s span) error {
		nodes, err := v.spanNodes(s)
		if err != nil {
			return err
		}

		for _, node := range nodes {
			if err := ctx.Err(); err != nil {
				return err
			}
			if failedBelow(node.Height()) {
				return nil
			}

			if err := v.ValidateHeader(node); err != nil {
				var ce *ConsensusError
				if !errors.As(err, &ce) {
					return err
				}
				mu.Lock()
				if first == nil || ce.Height < first.Height {
					first = ce
				}
				mu.Unlock()
				return nil
			}
		}

		v.logger.Debug("validated heights", zap.Int32("from", s.from), zap.Int32("to", s.to))
		return nil
	})
	if err != nil {
		return fmt.Errorf("validate range %d-%d: %w", from, to, err)
	}

	if first != nil {
		v.logger.Warn("consensus failure",
			zap.Int32("height", first.Height),
			zap.Stringer("hash", first.Hash),
			zap.Error(first.Err),
		)
		return first
	}
	return nil
}

// spanNodes returns the nodes of s in ascending height order, following
// parent links from the top so the span is one consistent branch.
func (v *Validator) spanNodes(s span) ([]*chain.Node, error) {
	top := v.index.NodeAtHeight(s.to)
	if top == nil {
		return nil, fmt.Errorf("height %d: %w", s.to, ErrOutOfRange)
	}

	nodes := make([]*chain.Node, s.to-s.from+1)
	node := top
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i] = node
		node = node.Parent()
	}
	return nodes, nil
}
