package metrics

import (
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchMissingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "header_ingester",
		Name:      "fetch_missing_total",
		Help:      "Count of attempts to fetch missing header heights.",
	}, []string{"network", "status"})
	ingesterFetchMissingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "header_ingester",
		Name:      "fetch_missing_duration_seconds",
		Help:      "Duration of fetching missing header heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "header_ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed height batches.",
	}, []string{"network", "status"})
	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "header_ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})
	ingesterFetchHeaderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "header_ingester",
		Name:      "fetch_header_duration_seconds",
		Help:      "Duration of fetching a single header.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
)

type HeaderIngester struct {
	network string
}

func NewHeaderIngester(network model.Network) *HeaderIngester {
	return &HeaderIngester{network: networkLabel(network)}
}

func (m HeaderIngester) ObserveFetchMissing(err error, started time.Time) {
	ingesterFetchMissingTotal.WithLabelValues(m.network, status(err)).Inc()
	ingesterFetchMissingDuration.WithLabelValues(m.network, status(err)).Observe(time.Since(started).Seconds())
}

func (m HeaderIngester) ObserveProcessBatch(err error, heights int) {
	ingesterProcessBatchTotal.WithLabelValues(m.network, status(err)).Inc()
	ingesterProcessBatchSize.WithLabelValues(m.network).Observe(float64(heights))
}

func (m HeaderIngester) ObserveFetchHeader(err error, started time.Time) {
	ingesterFetchHeaderDuration.WithLabelValues(m.network, status(err)).Observe(time.Since(started).Seconds())
}
