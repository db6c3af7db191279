package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"wayfarer/internal/planner"
	"wayfarer/internal/scoring"
)

type routeRequest struct {
	Area            planner.Area            `json:"area"`
	Start           time.Time               `json:"start"`
	End             time.Time               `json:"end"`
	WalkingSpeedKMH float64                  `json:"walking_speed_kmh"`
	Algorithm       string                   `json:"algorithm,omitempty"`
	Preferences     scoring.UserPreferences `json:"user_prefs"`
}

// kmhToMPS converts km/h (the wire unit, SPEC_FULL.md §6.3) to m/s (the
// unit every planner and distance computation works in internally).
func kmhToMPS(kmh float64) float64 {
	return kmh * 1000 / 3600
}

type routeResponse struct {
	Route planner.Route `json:"route"`
}

// Route computes a tour over the area and time budget described in the
// request body, using req.Algorithm if set, falling back to the process's
// configured default.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = h.cfg.RoutingAlgorithm
	}

	cacheKey, keyable := routeCacheKey(req, algorithm)
	if keyable {
		if cached, ok := h.routes.Get(cacheKey); ok {
			writeJSON(w, http.StatusOK, routeResponse{Route: cached})
			return
		}
	}

	var rng *rand.Rand
	if algorithm == planner.SimAnnealName {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	walkingSpeedMPS := kmhToMPS(req.WalkingSpeedKMH)
	p, err := planner.New(algorithm, h.graph, req.Start, req.End, walkingSpeedMPS, req.Area, req.Preferences, rng)
	if err != nil {
		writePlannerError(h.logger, w, err)
		return
	}

	route, err := p.ComputeRoute()
	if err != nil {
		writePlannerError(h.logger, w, err)
		return
	}

	if keyable {
		h.routes.Set(cacheKey, route)
	}
	writeJSON(w, http.StatusOK, routeResponse{Route: route})
}

// routeCacheKey derives a cache key from the parts of the request that
// determine the planner's output. Requests routed to the simulated
// annealing planner are not cached: each run draws from a fresh random
// source, so two identical requests are allowed to return different tours.
func routeCacheKey(req routeRequest, algorithm string) (string, bool) {
	if algorithm == planner.SimAnnealName {
		return "", false
	}
	b, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	return algorithm + ":" + string(b), true
}
