package handler

import (
	"log/slog"
	"time"

	"wayfarer/internal/config"
	"wayfarer/internal/graph"
	"wayfarer/internal/routecache"
)

// routeCacheTTL bounds how long an identical route request can be served
// from cache before the planner is asked to recompute it.
const routeCacheTTL = 2 * time.Minute

// Handler holds the dependencies shared by both endpoints.
type Handler struct {
	graph  *graph.Graph
	cfg    *config.Config
	logger *slog.Logger
	routes *routecache.Cache
}

// New creates a Handler.
func New(g *graph.Graph, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{graph: g, cfg: cfg, logger: logger, routes: routecache.New(routeCacheTTL)}
}
