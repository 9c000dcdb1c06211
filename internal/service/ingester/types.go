package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeaderSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchHeader(ctx context.Context, height uint64) (model.Header, error)
	}

	HeaderRepository interface {
		RandomMissingHeaderHeights(ctx context.Context, network model.Network, maxHeight, limit uint64) ([]uint64, error)
		InsertHeaders(ctx context.Context, headers []model.Header) error
	}

	Metrics interface {
		ObserveFetchMissing(err error, started time.Time)
		ObserveProcessBatch(err error, heights int)
		ObserveFetchHeader(err error, started time.Time)
	}
)
