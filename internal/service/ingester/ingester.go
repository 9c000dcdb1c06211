// Package ingester copies block headers from an HTMLCOIN node into the
// header store, filling whatever heights are still missing.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/clock"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/goodnatureofminers/htmlcoin-retarget/pkg/batcher"
	"github.com/goodnatureofminers/htmlcoin-retarget/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultWorkerCount        = 16
	randomMissingHeightsLimit = 10000

	headerBatchSize          = 2000
	headerBatchFlushInterval = 10 * time.Second
	headerFlushesPerSecond   = 5

	sleepDuration     = 5 * time.Second
	longSleepDuration = 1 * time.Minute

	minBackoff = time.Second
	maxBackoff = 2 * time.Minute
)

type Service struct {
	source            HeaderSource
	repo              HeaderRepository
	metrics           Metrics
	network           model.Network
	logger            *zap.Logger
	workerCount       int
	limit             uint64
	batch             batcher.Config
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	backoff           *backoff.ExponentialBackOff
}

type Option func(*Service)

// WithWorkerCount sets how many headers are fetched concurrently.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

func NewService(
	source HeaderSource,
	repo HeaderRepository,
	metrics Metrics,
	network model.Network,
	logger *zap.Logger,
	opts ...Option,
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("header ingester metrics is required")
	}

	s := &Service{
		source:      source,
		repo:        repo,
		metrics:     metrics,
		network:     network,
		logger:      logger.Named("ingester").With(zap.String("network", string(network))),
		workerCount: defaultWorkerCount,
		limit:       randomMissingHeightsLimit,
		batch: batcher.Config{
			Size:             headerBatchSize,
			Interval:         headerBatchFlushInterval,
			FlushesPerSecond: headerFlushesPerSecond,
		},
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		backoff:           newRetryBackoff(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// newRetryBackoff doubles the retry delay from minBackoff up to maxBackoff
// without jitter and never gives up.
func newRetryBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = minBackoff
	b.MaxInterval = maxBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Run ingests missing heights until ctx ends. Failed rounds are retried
// with exponential backoff. A canceled context is a clean shutdown.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		err := s.run(ctx)
		if err == nil {
			s.backoff.Reset()
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		delay := s.backoff.NextBackOff()
		s.logger.Warn("ingest round failed; backing off", zap.Duration("delay", delay), zap.Error(err))
		if err := s.sleep(ctx, delay); err != nil {
			return nil
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.fetchMissing(ctx)
	s.metrics.ObserveFetchMissing(err, started)
	if err != nil {
		return fmt.Errorf("fetch missing heights: %w", err)
	}

	if len(heights) == 0 {
		s.logger.Debug("no missing header heights; sleeping", zap.Duration("sleep", s.longSleepDuration))
		return s.sleep(ctx, s.longSleepDuration)
	}

	s.logger.Info("processing batch", zap.Int("heights", len(heights)))
	err = s.process(ctx, heights)
	s.metrics.ObserveProcessBatch(err, len(heights))
	if err != nil {
		return fmt.Errorf("process %d heights: %w", len(heights), err)
	}

	return s.sleep(ctx, s.sleepDuration)
}

func (s *Service) fetchMissing(ctx context.Context) ([]uint64, error) {
	latest, err := s.source.LatestHeight(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.RandomMissingHeaderHeights(ctx, s.network, latest, s.limit)
}

// process fetches heights concurrently and stores them through a batcher
// that is drained before returning.
func (s *Service) process(ctx context.Context, heights []uint64) error {
	b := batcher.New[model.Header](s.logger.Named("batcher"), s.repo.InsertHeaders, s.batch)
	b.Start(ctx)

	err := workerpool.Process(ctx, s.workerCount, heights, func(ctx context.Context, height uint64) error {
		started := time.Now()
		header, err := s.source.FetchHeader(ctx, height)
		s.metrics.ObserveFetchHeader(err, started)
		if err != nil {
			return fmt.Errorf("fetch header %d: %w", height, err)
		}
		if err := b.Err(); err != nil {
			return fmt.Errorf("store headers: %w", err)
		}
		return b.Add(ctx, header)
	})

	if stopErr := b.Stop(); stopErr != nil && err == nil {
		err = fmt.Errorf("store headers: %w", stopErr)
	}
	s.logger.Info("stored headers", zap.Int("headers", b.Flushed()), zap.Int("heights", len(heights)))
	return err
}
