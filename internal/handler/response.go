package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/war-simulator/internal/logger"
	"github.com/freeeve/war-simulator/internal/service"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error to its HTTP status. Caller-facing
// kinds keep their message; anything else is logged and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, messageOf(err))
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrPreconditionFailed):
		writeError(w, http.StatusBadRequest, messageOf(err))
	default:
		logger.ForRequest(r.Context()).Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func messageOf(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message()
	}
	return err.Error()
}
