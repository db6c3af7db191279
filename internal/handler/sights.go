package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"wayfarer/internal/graph"
	"wayfarer/internal/planner"
)

// Sights returns every sight within the requested area, sorted by node id
// for a stable response. The request body is the flat {lat,lon,radius}
// shape documented in SPEC_FULL.md §6.3 — planner.Area's wire tags already
// match it.
func (h *Handler) Sights(w http.ResponseWriter, r *http.Request) {
	var req planner.Area
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	found := h.graph.SightsInArea(req.Lat, req.Lon, req.Radius)
	out := make([]graph.Sight, 0, len(found))
	for _, s := range found {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })

	writeJSON(w, http.StatusOK, out)
}
