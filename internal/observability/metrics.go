package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webhook_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "webhook_active_requests",
		Help: "Current in-flight requests",
	})

	// Ingestion metrics
	EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Webhook deliveries by event type and outcome",
	}, []string{"event_type", "outcome"})

	StoreOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webhook_store_op_duration_seconds",
		Help:    "Event store operation latency",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"op"})

	PublishFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_publish_fail_total",
		Help: "Stored events that could not be published",
	})

	StoreHealthy = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "webhook_store_healthy",
		Help: "1 if the last store ping succeeded",
	})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		EventsTotal, StoreOpDuration, PublishFailTotal, StoreHealthy,
	)
}
