package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lzjever/webhook-events/internal/api"
	"github.com/lzjever/webhook-events/internal/grpchealth"
	"github.com/lzjever/webhook-events/internal/observability"
	"github.com/lzjever/webhook-events/internal/publish"
	"github.com/lzjever/webhook-events/internal/store"
)

func main() {
	var cfg api.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	order, err := store.ParseOrder(cfg.EventsOrder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: WEBHOOK_EVENTS_ORDER: %v\n", err)
		os.Exit(1)
	}
	if cfg.HealthInterval <= 0 {
		fmt.Fprintf(os.Stderr, "config: WEBHOOK_HEALTH_INTERVAL must be positive, got %s\n", cfg.HealthInterval)
		os.Exit(1)
	}

	log, _ := observability.NewLogger(cfg.LogLevel)
	defer log.Sync()

	// Replace global logger
	zap.ReplaceGlobals(log)

	reg := prometheus.DefaultRegisterer
	observability.RegisterAll(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gw, err := store.Open(ctx, cfg.DBDSN, order)
	if err != nil {
		log.Fatal("event store connect failed", zap.Error(err))
	}
	defer gw.Close()

	var pub publish.Publisher = publish.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		k, err := publish.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.PublishTimeout)
		if err != nil {
			log.Fatal("kafka producer failed", zap.Error(err))
		}
		pub = k
		log.Info("publishing events to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}
	defer pub.Close()

	// Main API server
	apiHandler := api.NewAPI(gw, pub, cfg, log)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apiHandler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Metrics server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}

	// gRPC health server
	healthSrv := grpchealth.NewServer(gw, cfg.HealthInterval, log)
	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		log.Fatal("grpc health listen failed", zap.Error(err))
	}

	go func() {
		log.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("grpc health server starting", zap.String("addr", cfg.GRPCHealthAddr))
		if err := healthSrv.Serve(lis); err != nil {
			log.Fatal("grpc health server failed", zap.Error(err))
		}
	}()
	go healthSrv.Run(ctx)

	go func() {
		log.Info("API server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("API server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down API server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
	healthSrv.Stop()

	log.Info("API server stopped")
}
