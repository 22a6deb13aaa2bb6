package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// DeliveryLogger returns a child logger with webhook delivery fields.
func DeliveryLogger(base *zap.Logger, eventType, deliveryID, requestID string) *zap.Logger {
	return base.With(
		zap.String("event_type", eventType),
		zap.String("delivery_id", deliveryID),
		zap.String("request_id", requestID),
	)
}
