package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

const maxHeaderHeightQuery = `
SELECT count() AS headers, max(height) AS max_height
FROM htmlcoin_headers
WHERE network = ?`

// MaxHeaderHeight returns the highest stored height for network. ok is false
// when nothing is stored yet.
func (r *Repository) MaxHeaderHeight(ctx context.Context, network model.Network) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_header_height", network, err, start)
	}()

	rs, err := r.conn.Query(ctx, maxHeaderHeightQuery, string(network))
	if err != nil {
		return 0, false, fmt.Errorf("query max header height: %w", err)
	}
	defer func() {
		if closeErr := rs.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rs.Next() {
		if err = rs.Err(); err != nil {
			return 0, false, fmt.Errorf("iterate max header height: %w", err)
		}
		return 0, false, errors.New("max header height not found")
	}

	var count uint64
	if err = rs.Scan(&count, &height); err != nil {
		return 0, false, fmt.Errorf("scan max header height: %w", err)
	}
	if err = rs.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max header height: %w", err)
	}

	return height, count > 0, nil
}
