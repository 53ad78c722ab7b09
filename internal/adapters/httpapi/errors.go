package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/siamfleet/fleet-usage-api/internal/app/auth"
	"github.com/siamfleet/fleet-usage-api/internal/app/trips"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeAppError maps application-layer errors onto HTTP responses. Anything
// not carrying an explicit status becomes an opaque 500.
func writeAppError(w http.ResponseWriter, err error) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		writeError(w, authErr.Status, authErr.Message)
		return
	}
	var tripsErr *trips.Error
	if errors.As(err, &tripsErr) {
		writeError(w, tripsErr.Status, tripsErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
