package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

const headersRangeQuery = `
SELECT
	height,
	hash,
	prev_hash,
	timestamp,
	version,
	bits,
	nonce,
	proof_type
FROM htmlcoin_headers FINAL
WHERE network = ? AND height >= ? AND height <= ?
ORDER BY height`

// HeadersRange returns the stored headers with heights in [from, to], ordered
// by height. Missing heights are simply absent from the result.
func (r *Repository) HeadersRange(ctx context.Context, network model.Network, from, to uint64) (headers []model.Header, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("headers_range", network, err, start)
	}()

	if to < from {
		return nil, nil
	}

	rs, err := r.conn.Query(ctx, headersRangeQuery, string(network), from, to)
	if err != nil {
		return nil, fmt.Errorf("query headers range: %w", err)
	}
	defer func() {
		if closeErr := rs.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	headers = make([]model.Header, 0, min(to-from+1, 4096))
	for rs.Next() {
		h := model.Header{Network: network}
		var proofType string
		if err = rs.Scan(
			&h.Height,
			&h.Hash,
			&h.PrevHash,
			&h.Timestamp,
			&h.Version,
			&h.Bits,
			&h.Nonce,
			&proofType,
		); err != nil {
			return nil, fmt.Errorf("scan header: %w", err)
		}
		h.ProofType = model.ProofType(proofType)
		headers = append(headers, h)
	}
	if err = rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate headers range: %w", err)
	}

	return headers, nil
}
