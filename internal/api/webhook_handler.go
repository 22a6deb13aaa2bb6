package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lzjever/webhook-events/internal/api/middleware"
	"github.com/lzjever/webhook-events/internal/core"
	"github.com/lzjever/webhook-events/internal/normalize"
	"github.com/lzjever/webhook-events/internal/observability"
)

const (
	EventHeader    = "X-GitHub-Event"
	DeliveryHeader = "X-GitHub-Delivery"
)

// GitHub caps webhook payloads at 25 MB.
const maxPayloadBytes = 25 << 20

// ReceiveWebhook normalizes a delivery and stores the resulting event.
func (a *API) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventType := r.Header.Get(EventHeader)
	log := observability.DeliveryLogger(a.log, eventType, r.Header.Get(DeliveryHeader), middleware.GetRequestID(r))

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		log.Warn("read webhook body failed", zap.Error(err))
		a.reject(w, eventType, core.NewAppError(core.ErrInvalidPayload, "Invalid JSON payload"), log)
		return
	}

	ev, err := a.normalizer.Normalize(eventType, body)
	if err != nil {
		var appErr *core.AppError
		if !errors.As(err, &appErr) {
			appErr = core.NewAppError(core.ErrInternal, "internal server error")
		}
		a.reject(w, eventType, appErr, log)
		return
	}

	id, err := a.store.Write(ctx, ev)
	if err != nil {
		log.Error("store event failed", zap.Error(err))
		a.reject(w, eventType, core.NewAppError(core.ErrStorageUnavailable, "Storage unavailable"), log)
		return
	}
	observability.EventsTotal.WithLabelValues(eventTypeLabel(eventType), "stored").Inc()
	log.Info("webhook stored",
		zap.String("id", id),
		zap.String("action", string(ev.Action)),
		zap.String("event_request_id", ev.RequestID),
		zap.String("author", ev.Author),
	)

	// The record is already stored; a slow broker must not hold the response.
	pubCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	err = a.publisher.Publish(pubCtx, core.StoredEvent{ID: id, Event: ev})
	cancel()
	if err != nil {
		observability.PublishFailTotal.Inc()
		log.Warn("publish event failed", zap.String("id", id), zap.Error(err))
	}

	WriteMessage(w, http.StatusOK, "Event received")
}

func (a *API) reject(w http.ResponseWriter, eventType string, err *core.AppError, log *zap.Logger) {
	observability.EventsTotal.WithLabelValues(eventTypeLabel(eventType), strings.ToLower(string(err.Code))).Inc()
	log.Info("webhook rejected", zap.String("code", string(err.Code)), zap.String("reason", err.Message))
	WriteError(w, err)
}

// eventTypeLabel keeps the metric label set bounded.
func eventTypeLabel(eventType string) string {
	switch eventType {
	case normalize.EventPush, normalize.EventPullRequest:
		return eventType
	}
	return "other"
}
