package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lzjever/webhook-events/internal/api/middleware"
	"github.com/lzjever/webhook-events/internal/normalize"
	"github.com/lzjever/webhook-events/internal/publish"
	"github.com/lzjever/webhook-events/internal/store"
)

// DefaultPublishTimeout bounds a publish when Config leaves it unset.
const DefaultPublishTimeout = 5 * time.Second

type API struct {
	store          store.Gateway
	normalizer     *normalize.Normalizer
	publisher      publish.Publisher
	publishTimeout time.Duration
	eventsLimit    int
	corsOrigins    []string
	log            *zap.Logger
}

func NewAPI(gw store.Gateway, pub publish.Publisher, cfg Config, log *zap.Logger) *API {
	if pub == nil {
		pub = publish.Nop{}
	}
	limit := cfg.EventsLimit
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	publishTimeout := cfg.PublishTimeout
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &API{
		store:          gw,
		normalizer:     normalize.New(),
		publisher:      pub,
		publishTimeout: publishTimeout,
		eventsLimit:    limit,
		corsOrigins:    origins,
		log:            log,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger)

	// Health endpoints
	r.Get("/healthz", a.HealthHandler)
	r.Get("/readyz", a.ReadyHandler)

	r.Route("/webhook", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", EventHeader, DeliveryHeader, middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
		}))

		r.With(chiMiddleware.AllowContentType("application/json")).Post("/receiver", a.ReceiveWebhook)
		r.Get("/events", a.ListEvents)
	})

	return r
}
