// Package replay rebuilds the stored header chain in memory and checks every
// header against the retarget and proof rules.
package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/goodnatureofminers/htmlcoin-retarget/pkg/safe"
	"go.uber.org/zap"
)

const defaultChunkSize = 5000

// ErrMissingHeaders is returned when the store has gaps below its tip.
var ErrMissingHeaders = errors.New("missing stored headers")

type Service struct {
	repo      HeaderRepository
	index     *chain.Index
	validator Validator
	metrics   Metrics
	network   model.Network
	logger    *zap.Logger
	chunkSize uint64
}

// NewService replays into index, which validator must read from.
func NewService(
	repo HeaderRepository,
	index *chain.Index,
	validator Validator,
	metrics Metrics,
	network model.Network,
	logger *zap.Logger,
	chunkSize uint64,
) *Service {
	if chunkSize == 0 {
		chunkSize = defaultChunkSize
	}
	return &Service{
		repo:      repo,
		index:     index,
		validator: validator,
		metrics:   metrics,
		network:   network,
		logger:    logger.Named("replay").With(zap.String("network", string(network))),
		chunkSize: chunkSize,
	}
}

// Run validates every stored header from genesis to the stored tip. It
// returns the first *validator.ConsensusError found, or nil when the stored
// chain is consistent.
func (s *Service) Run(ctx context.Context) error {
	tip, ok, err := s.repo.MaxHeaderHeight(ctx, s.network)
	if err != nil {
		return fmt.Errorf("max header height: %w", err)
	}
	if !ok {
		s.logger.Info("no stored headers")
		return nil
	}

	s.logger.Info("replaying stored chain", zap.Uint64("tip", tip))
	for from := uint64(0); from <= tip; from += s.chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		to := min(from+s.chunkSize-1, tip)
		if err := s.replayChunk(ctx, from, to); err != nil {
			return err
		}
	}

	s.logger.Info("stored chain consistent", zap.Uint64("tip", tip))
	return nil
}

func (s *Service) replayChunk(ctx context.Context, from, to uint64) error {
	headers, err := s.repo.HeadersRange(ctx, s.network, from, to)
	if err != nil {
		return fmt.Errorf("load headers %d-%d: %w", from, to, err)
	}

	want := from
	for _, h := range headers {
		if h.Height != want {
			return fmt.Errorf("height %d: %w", want, ErrMissingHeaders)
		}
		ch, err := h.ChainHeader()
		if err != nil {
			return err
		}
		if _, err := s.index.AddHeader(ch); err != nil {
			return fmt.Errorf("index header %d: %w", h.Height, err)
		}
		want++
	}
	if want != to+1 {
		return fmt.Errorf("height %d: %w", want, ErrMissingHeaders)
	}

	lo, err := safe.Int32(from)
	if err != nil {
		return err
	}
	hi, err := safe.Int32(to)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateRange(ctx, lo, hi); err != nil {
		s.logger.Error("stored chain rejected", zap.Uint64("from", from), zap.Uint64("to", to), zap.Error(err))
		return err
	}

	s.metrics.SetValidatedHeight(hi)
	s.logger.Info("validated headers", zap.Int32("from", lo), zap.Int32("to", hi))
	return nil
}
