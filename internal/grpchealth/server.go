// Package grpchealth serves the standard gRPC health protocol, driven by
// periodic store pings.
package grpchealth

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/lzjever/webhook-events/internal/observability"
)

// ServiceName is the name probes pass to Check.
const ServiceName = "webhook.events"

// DefaultInterval is used when NewServer is given a non-positive interval.
const DefaultInterval = 10 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	srv      *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	log      *zap.Logger
}

func NewServer(pinger Pinger, interval time.Duration, log *zap.Logger) *Server {
	if interval <= 0 {
		interval = DefaultInterval
	}
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{srv: srv, health: hs, pinger: pinger, interval: interval, log: log}
}

// Serve blocks serving on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// Run pings the store every interval and updates the serving status until
// ctx is done.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *Server) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Warn("store ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
		observability.StoreHealthy.Set(0)
	} else {
		observability.StoreHealthy.Set(1)
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
}

// Stop marks every service NOT_SERVING and drains in-flight RPCs.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
