// Package planner computes walking tours over a road graph: a deterministic
// greedy planner and a simulated-annealing planner, sharing the Area,
// Sector, RouteSector and Route wire types and the AlgorithmError taxonomy.
package planner

import (
	"encoding/json"

	"wayfarer/internal/graph"
	"wayfarer/internal/scoring"
)

// Area is a circular query region.
type Area struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"`
}

// SectorKind discriminates a RouteSector's position within a Route.
type SectorKind string

const (
	Start        SectorKind = "Start"
	Intermediate SectorKind = "Intermediate"
	End          SectorKind = "End"
)

// Sector is one leg of a route: the path of nodes walked, the sight reached
// (nil for the final return-to-root leg), and the time budget in seconds.
type Sector struct {
	TimeBudget int
	Sight      *graph.Sight
	Nodes      []graph.Node
}

// RouteSector tags a Sector with its position in the route for the "type"
// discriminated-union wire format described in SPEC_FULL.md §6.3.
type RouteSector struct {
	Kind   SectorKind
	Sector Sector
}

type routeSectorWire struct {
	Type       SectorKind   `json:"type"`
	TimeBudget int          `json:"time_budget"`
	Sight      *graph.Sight `json:"sight,omitempty"`
	Nodes      []graph.Node `json:"nodes"`
}

// MarshalJSON flattens Kind and Sector into a single tagged object.
func (r RouteSector) MarshalJSON() ([]byte, error) {
	return json.Marshal(routeSectorWire{
		Type:       r.Kind,
		TimeBudget: r.Sector.TimeBudget,
		Sight:      r.Sector.Sight,
		Nodes:      r.Sector.Nodes,
	})
}

// UnmarshalJSON restores a RouteSector from its tagged wire form.
func (r *RouteSector) UnmarshalJSON(data []byte) error {
	var w routeSectorWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Kind = w.Type
	r.Sector = Sector{TimeBudget: w.TimeBudget, Sight: w.Sight, Nodes: w.Nodes}
	return nil
}

// Route is an ordered sequence of sectors from a start location back to
// itself: exactly one Start, zero or more Intermediate, exactly one End —
// unless the route is empty.
type Route []RouteSector

// CollectedScore sums the scores of all Start/Intermediate sector sights;
// End sectors never carry a sight and contribute nothing.
func (r Route) CollectedScore(scores scoring.Map) int {
	total := 0
	for _, sec := range r {
		if sec.Sector.Sight == nil {
			continue
		}
		total += scores[sec.Sector.Sight.NodeID]
	}
	return total
}

// AlgorithmErrorKind enumerates the AlgorithmError taxonomy (SPEC_FULL.md §7).
type AlgorithmErrorKind int

const (
	UnknownAlgorithm AlgorithmErrorKind = iota
	NegativeTimeInterval
	NoSightsFound
	NoRouteFound
)

// AlgorithmError is returned by planner construction and route computation.
type AlgorithmError struct {
	Kind        AlgorithmErrorKind
	UnknownName string // set for UnknownAlgorithm
	From, To    int    // set for NoRouteFound
}

func (e *AlgorithmError) Error() string {
	switch e.Kind {
	case UnknownAlgorithm:
		return "planner: unknown algorithm: " + e.UnknownName
	case NegativeTimeInterval:
		return "planner: end time is before start time"
	case NoSightsFound:
		return "planner: no reachable sights in area"
	case NoRouteFound:
		return "planner: no route found"
	default:
		return "planner: algorithm error"
	}
}
