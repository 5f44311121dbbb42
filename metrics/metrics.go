// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vehicle_forecast"

var (
	PredictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_served_total",
		Help:      "Total number of predictions computed and returned.",
	})
	PredictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_failed_total",
		Help:      "Total number of prediction failures by reason.",
	}, []string{"reason"})
	PredictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of a fetch-and-fit prediction.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})
	RecordMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "historical_mutations_total",
		Help:      "Historical record writes by action.",
	}, []string{"action"})
	IngestReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_messages_received_total",
		Help:      "Total number of MQTT messages received.",
	})
	IngestStored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_messages_stored_total",
		Help:      "Total number of MQTT messages written to the store.",
	})
	IngestFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_messages_failed_total",
		Help:      "Total number of MQTT messages rejected or failed to store.",
	})
)

// Failure reasons for PredictionsFailed.
const (
	ReasonWrongSource = "wrong_source"
	ReasonNoData      = "no_data"
	ReasonStore       = "store"
	ReasonCompute     = "compute"
)
