package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

const randomMissingHeaderHeightsQuery = `
WITH toUInt64(?) AS mx
SELECT number AS height
FROM numbers(mx + 1) AS m
LEFT ANTI JOIN (
	SELECT height
	FROM htmlcoin_headers
	WHERE network = ? AND height <= mx
) AS h ON h.height = m.number
WHERE m.number <= mx
ORDER BY rand()
LIMIT ?`

// RandomMissingHeaderHeights returns up to limit heights in [0, maxHeight]
// that have no stored header, in random order.
func (r *Repository) RandomMissingHeaderHeights(ctx context.Context, network model.Network, maxHeight, limit uint64) ([]uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("random_missing_header_heights", network, err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	rs, err := r.conn.Query(ctx, randomMissingHeaderHeightsQuery, maxHeight, string(network), limit)
	if err != nil {
		return nil, fmt.Errorf("query random missing header heights: %w", err)
	}
	defer rs.Close()

	var heights []uint64
	for rs.Next() {
		var height uint64
		if err = rs.Scan(&height); err != nil {
			return nil, fmt.Errorf("scan random missing header height: %w", err)
		}
		heights = append(heights, height)
	}
	if err = rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate random missing header heights: %w", err)
	}

	return heights, nil
}
