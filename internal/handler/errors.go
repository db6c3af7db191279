package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wayfarer/internal/planner"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writePlannerError maps the planner.AlgorithmError taxonomy onto HTTP
// status codes (SPEC_FULL.md §7): client-caused conditions are 400, a
// genuinely unreachable route is 422, anything else is an internal error.
func writePlannerError(logger *slog.Logger, w http.ResponseWriter, err error) {
	algErr, ok := err.(*planner.AlgorithmError)
	if !ok {
		logger.Error("internal error computing route", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch algErr.Kind {
	case planner.UnknownAlgorithm, planner.NegativeTimeInterval, planner.NoSightsFound:
		writeError(w, http.StatusBadRequest, algErr.Error())
	case planner.NoRouteFound:
		writeError(w, http.StatusUnprocessableEntity, algErr.Error())
	default:
		logger.Error("unrecognized algorithm error kind", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
