package replay

import (
	"context"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeaderRepository interface {
		MaxHeaderHeight(ctx context.Context, network model.Network) (uint64, bool, error)
		HeadersRange(ctx context.Context, network model.Network, from, to uint64) ([]model.Header, error)
	}

	Validator interface {
		ValidateRange(ctx context.Context, from, to int32) error
	}

	Metrics interface {
		SetValidatedHeight(height int32)
	}
)
