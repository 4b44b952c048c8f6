package graphql

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "graphql_client",
		Name:      "operations_total",
		Help:      "GraphQL operations sent to the API by outcome",
	}, []string{"operation", "kind", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "graphql_client",
		Name:      "operation_duration_seconds",
		Help:      "Round trip time of GraphQL operations, retries included",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "kind"})
)

func observe(doc Document, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case isGraphQLError(err):
		outcome = "graphql_error"
	default:
		outcome = "transport_error"
	}
	operationsTotal.WithLabelValues(doc.Name, string(doc.Kind), outcome).Inc()
	operationDuration.WithLabelValues(doc.Name, string(doc.Kind)).Observe(time.Since(start).Seconds())
}
