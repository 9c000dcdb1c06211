package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

const insertHeadersQuery = `
INSERT INTO htmlcoin_headers (
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	version,
	bits,
	nonce,
	proof_type
) VALUES`

// InsertHeaders stores header rows in ClickHouse. Re-inserting a height
// replaces the previous row once parts merge.
func (r *Repository) InsertHeaders(ctx context.Context, headers []model.Header) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_headers", firstNetwork(headers), err, start)
	}()

	if len(headers) == 0 {
		return nil
	}

	b, err := r.conn.PrepareBatch(ctx, insertHeadersQuery)
	if err != nil {
		return fmt.Errorf("prepare headers batch: %w", err)
	}

	for _, h := range headers {
		if err = b.Append(
			string(h.Network),
			h.Height,
			h.Hash,
			h.PrevHash,
			h.Timestamp,
			h.Version,
			h.Bits,
			h.Nonce,
			string(h.ProofType),
		); err != nil {
			return fmt.Errorf("append header %d: %w", h.Height, err)
		}
	}

	if err = b.Send(); err != nil {
		return fmt.Errorf("insert headers: %w", err)
	}
	return nil
}

func firstNetwork(headers []model.Header) model.Network {
	if len(headers) == 0 {
		return ""
	}
	return headers[0].Network
}
