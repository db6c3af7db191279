package planner

import (
	"math"
	"sort"
	"time"

	"wayfarer/internal/graph"
	"wayfarer/internal/scoring"
)

// GreedyName is the routing_algorithm config value selecting Greedy.
const GreedyName = "Greedy"

// edgeRadiusMultiplier widens the area-restricted adjacency beyond the
// sight radius so round trips that graze the boundary are not cut off.
const edgeRadiusMultiplier = 1.1

// Greedy iteratively appends the best score-per-distance sight subject to a
// return-trip time-budget feasibility check, per SPEC_FULL.md §4.8.
type Greedy struct {
	graph           *graph.Graph
	area            Area
	walkingSpeedMPS float64
	timeBudgetSecs  int
	edgeRadius      float64
	rootID          int
	sights          map[int]graph.Sight
	scores          scoring.Map
}

// NewGreedy constructs a Greedy planner, computing the reachable sight set
// and score map up front.
func NewGreedy(g *graph.Graph, start, end time.Time, walkingSpeedMPS float64, area Area, prefs scoring.UserPreferences) (*Greedy, error) {
	if end.Before(start) {
		return nil, &AlgorithmError{Kind: NegativeTimeInterval}
	}
	timeBudgetSecs := int(end.Sub(start) / time.Second)

	relevantRadius := walkingSpeedMPS * float64(timeBudgetSecs)
	sightRadius := math.Min(relevantRadius, area.Radius)
	edgeRadius := relevantRadius * edgeRadiusMultiplier

	sights := g.ReachableSights(area.Lat, area.Lon, sightRadius, edgeRadius)
	if len(sights) == 0 {
		return nil, &AlgorithmError{Kind: NoSightsFound}
	}

	rootID := g.NearestNode(area.Lat, area.Lon)
	scores := scoring.Compute(sights, prefs)

	return &Greedy{
		graph:           g,
		area:            area,
		walkingSpeedMPS: walkingSpeedMPS,
		timeBudgetSecs:  timeBudgetSecs,
		edgeRadius:      edgeRadius,
		rootID:          rootID,
		sights:          sights,
		scores:          scores,
	}, nil
}

type rankedSight struct {
	id     int
	dist   int
	metric float64
}

// ComputeRoute constructs the tour. See SPEC_FULL.md §4.8 for the full
// per-iteration rules, including the deliberate corrections versus the
// original source: ceil-per-leg feasibility, empty-route termination when no
// sight was ever admitted, and a NoRouteFound error (never a panic) when the
// final return-to-root leg has no path.
func (p *Greedy) ComputeRoute() (Route, error) {
	unvisited := make(map[int]struct{}, len(p.sights))
	for id := range p.sights {
		if p.scores[id] > 0 {
			unvisited[id] = struct{}{}
		}
	}

	current := p.rootID
	timeLeft := p.timeBudgetSecs
	var route Route
	added := false

	for {
		ota := p.graph.DijkstraOneToAllInArea(current, p.area.Lat, p.area.Lon, p.edgeRadius)

		ranked := make([]rankedSight, 0, len(unvisited))
		for id := range unvisited {
			dist, ok := ota.DistTo(id)
			if !ok {
				continue
			}
			ranked = append(ranked, rankedSight{id: id, dist: dist, metric: float64(p.scores[id]) / float64(max(1, dist))})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].metric != ranked[j].metric {
				return ranked[i].metric > ranked[j].metric
			}
			return ranked[i].id < ranked[j].id
		})

		admitted := false
		for _, cand := range ranked {
			distToRoot, _, ok := p.graph.DijkstraPointToPointInArea(cand.id, p.rootID, p.area.Lat, p.area.Lon, p.edgeRadius)
			if !ok {
				continue
			}
			secsToSight := int(math.Ceil(float64(cand.dist) / p.walkingSpeedMPS))
			secsToRoot := int(math.Ceil(float64(distToRoot) / p.walkingSpeedMPS))
			total := secsToSight + secsToRoot + 1
			if total > timeLeft {
				continue
			}

			path, _ := ota.PathTo(cand.id)
			sight := p.sights[cand.id]
			sec := Sector{
				TimeBudget: int(math.Floor(float64(cand.dist) / p.walkingSpeedMPS)),
				Sight:      &sight,
				Nodes:      nodesFromIDs(p.graph, path),
			}
			kind := Intermediate
			if current == p.rootID {
				kind = Start
			}
			route = append(route, RouteSector{Kind: kind, Sector: sec})

			delete(unvisited, cand.id)
			timeLeft -= total
			current = cand.id
			added = true
			admitted = true
			break
		}

		if admitted {
			continue
		}

		if !added {
			return Route{}, nil
		}

		dist, path, ok := p.graph.DijkstraPointToPointInArea(current, p.rootID, p.area.Lat, p.area.Lon, p.edgeRadius)
		if !ok {
			return nil, &AlgorithmError{Kind: NoRouteFound, From: current, To: p.rootID}
		}
		sec := Sector{
			TimeBudget: int(math.Floor(float64(dist) / p.walkingSpeedMPS)),
			Nodes:      nodesFromIDs(p.graph, path),
		}
		route = append(route, RouteSector{Kind: End, Sector: sec})
		return route, nil
	}
}

// CollectedScore sums the scores of visited sights.
func (p *Greedy) CollectedScore(route Route) int {
	return route.CollectedScore(p.scores)
}

func nodesFromIDs(g *graph.Graph, ids []int) []graph.Node {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = g.Node(id)
	}
	return nodes
}
