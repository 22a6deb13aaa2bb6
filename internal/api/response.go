package api

import (
	"encoding/json"
	"net/http"

	"github.com/lzjever/webhook-events/internal/core"
)

// WriteError writes err as {"error": msg} or {"message": msg}, depending on
// the code.
func WriteError(w http.ResponseWriter, err *core.AppError) {
	WriteJSON(w, err.Code.HTTPStatus(), map[string]string{
		err.Code.BodyKey(): err.Message,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": msg} with status.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}
