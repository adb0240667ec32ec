package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	PotionsCrafted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePotionsCrafted,
			Help: HelpTextPotionsCrafted,
		},
	)

	ExtractionsPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExtractionsPerformed,
			Help: HelpTextExtractionsPerformed,
		},
	)

	RecipesSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesSaved,
			Help: HelpTextRecipesSaved,
		},
	)
)
