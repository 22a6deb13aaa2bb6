package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lzjever/webhook-events/internal/core"
)

// ListEvents returns the most recent stored events.
func (a *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.store.ListRecent(r.Context(), a.eventsLimit)
	if err != nil {
		a.log.Error("list events failed", zap.Error(err))
		WriteError(w, core.NewAppError(core.ErrStorageUnavailable, "Storage unavailable"))
		return
	}
	if events == nil {
		events = []core.StoredEvent{}
	}
	WriteJSON(w, http.StatusOK, events)
}
