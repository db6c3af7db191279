package planner

import (
	"math/rand"
	"time"

	"wayfarer/internal/graph"
	"wayfarer/internal/scoring"
)

// Planner is the common interface both concrete route planners satisfy. The
// HTTP boundary resolves a routing_algorithm config or request name to one of
// them through New.
type Planner interface {
	ComputeRoute() (Route, error)
	CollectedScore(Route) int
}

// New constructs the planner named by algorithm, or an
// AlgorithmError{UnknownAlgorithm} if the name matches neither GreedyName nor
// SimAnnealName. rng is only consulted for SimAnneal; callers that always
// dispatch to Greedy may pass nil.
func New(algorithm string, g *graph.Graph, start, end time.Time, walkingSpeedMPS float64, area Area, prefs scoring.UserPreferences, rng *rand.Rand) (Planner, error) {
	switch algorithm {
	case GreedyName:
		return NewGreedy(g, start, end, walkingSpeedMPS, area, prefs)
	case SimAnnealName:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return NewSimAnneal(g, start, end, walkingSpeedMPS, area, prefs, rng)
	default:
		return nil, &AlgorithmError{Kind: UnknownAlgorithm, UnknownName: algorithm}
	}
}
