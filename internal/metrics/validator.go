package metrics

import (
	"time"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validatorHeadersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "headers_total",
		Help:      "Count of validated headers by proof type and outcome.",
	}, []string{"network", "proof_type", "status"})
	validatorHeaderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "header_duration_seconds",
		Help:      "Duration of validating a single header.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	}, []string{"network", "proof_type", "status"})
	replayValidatedHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "replay",
		Name:      "validated_height",
		Help:      "Highest height validated by the chain replay.",
	}, []string{"network"})
)

// Validator tracks header validation outcomes.
type Validator struct {
	network string
}

func NewValidator(network model.Network) *Validator {
	return &Validator{network: networkLabel(network)}
}

func (m Validator) ObserveHeader(proofType string, err error, started time.Time) {
	validatorHeadersTotal.WithLabelValues(m.network, proofType, status(err)).Inc()
	validatorHeaderDuration.WithLabelValues(m.network, proofType, status(err)).Observe(time.Since(started).Seconds())
}

// SetValidatedHeight records replay progress.
func (m Validator) SetValidatedHeight(height int32) {
	replayValidatedHeight.WithLabelValues(m.network).Set(float64(height))
}
