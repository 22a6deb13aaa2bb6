package api

import "time"

type Config struct {
	HTTPAddr        string        `envconfig:"WEBHOOK_HTTP_ADDR" default:"0.0.0.0:8080"`
	DBDSN           string        `envconfig:"WEBHOOK_DB_DSN" required:"true"`
	MetricsAddr     string        `envconfig:"WEBHOOK_METRICS_ADDR" default:"0.0.0.0:9090"`
	GRPCHealthAddr  string        `envconfig:"WEBHOOK_GRPC_HEALTH_ADDR" default:"0.0.0.0:9091"`
	HealthInterval  time.Duration `envconfig:"WEBHOOK_HEALTH_INTERVAL" default:"10s"`
	LogLevel        string        `envconfig:"WEBHOOK_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"WEBHOOK_SHUTDOWN_TIMEOUT" default:"30s"`
	EventsLimit     int           `envconfig:"WEBHOOK_EVENTS_LIMIT" default:"10"`
	EventsOrder     string        `envconfig:"WEBHOOK_EVENTS_ORDER" default:"timestamp"`
	CORSOrigins     []string      `envconfig:"WEBHOOK_CORS_ORIGINS" default:"*"`
	KafkaBrokers    []string      `envconfig:"WEBHOOK_KAFKA_BROKERS"`
	KafkaTopic      string        `envconfig:"WEBHOOK_KAFKA_TOPIC" default:"webhook-events"`
	PublishTimeout  time.Duration `envconfig:"WEBHOOK_KAFKA_PUBLISH_TIMEOUT" default:"5s"`
}
