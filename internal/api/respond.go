package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kashifm/lunchledger/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps service errors onto HTTP statuses. Validation failures
// and lookups keep their message; anything unexpected is a store failure
// and gets a generic body so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrSameMember),
		errors.Is(err, models.ErrBlankName),
		errors.Is(err, models.ErrNoPayer),
		errors.Is(err, models.ErrNoShares):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrMemberNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrMemberHasHistory):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
