// Package clickhouse stores HTMLCOIN block headers in ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}

	// session is the part of a ClickHouse connection the queries use.
	session interface {
		Query(ctx context.Context, query string, args ...any) (rows, error)
		PrepareBatch(ctx context.Context, query string) (batch, error)
		Close() error
	}

	rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}

	batch interface {
		Append(v ...any) error
		Send() error
	}
)

type Repository struct {
	conn    session
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: nativeSession{conn: conn}, metrics: metrics}, nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	return r.conn.Close()
}

type nativeSession struct {
	conn clickhouse.Conn
}

func (s nativeSession) Query(ctx context.Context, query string, args ...any) (rows, error) {
	return s.conn.Query(ctx, query, args...)
}

func (s nativeSession) PrepareBatch(ctx context.Context, query string) (batch, error) {
	return s.conn.PrepareBatch(ctx, query)
}

func (s nativeSession) Close() error {
	return s.conn.Close()
}
