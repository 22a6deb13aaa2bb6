package api

import (
	"net/http"
)

// HealthHandler returns 200 if service is healthy.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// ReadyHandler returns 200 if the event store is reachable.
func (a *API) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "store unavailable"})
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
