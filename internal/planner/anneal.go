package planner

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"wayfarer/internal/dijkstra"
	"wayfarer/internal/graph"
	"wayfarer/internal/scoring"
)

// SimAnnealName is the routing_algorithm config value selecting the
// simulated-annealing planner.
const SimAnnealName = "DerAllerbesteste"

const (
	annealT0                = 1.0
	annealAlpha             = 0.97
	annealItersPerEpoch     = 5000 // multiplied by |S|
	annealMaxWallTime       = 5000 * time.Millisecond
	annealNonImprovingLimit = 30
)

// SimAnneal is a permutation-based metaheuristic planner over the candidate
// sight set, per SPEC_FULL.md §4.9. Its scoring function and route
// materialization are authored fresh — the original source's
// `calculate_score` was a uniform random-number stub and its `compute_route`
// was unfinished (resolved Open Question 1, SPEC_FULL.md §9).
type SimAnneal struct {
	graph           *graph.Graph
	area            Area
	walkingSpeedMPS float64
	timeBudgetSecs  int
	rootID          int
	sightIDs        []int
	sights          map[int]graph.Sight
	scores          scoring.Map
	distFrom        map[int]*dijkstra.Result
	rng             *rand.Rand
}

// NewSimAnneal constructs a SimAnneal planner. rng must be supplied by the
// caller so runs are reproducible in tests; production callers pass a
// source seeded from wall-clock time.
func NewSimAnneal(g *graph.Graph, start, end time.Time, walkingSpeedMPS float64, area Area, prefs scoring.UserPreferences, rng *rand.Rand) (*SimAnneal, error) {
	if end.Before(start) {
		return nil, &AlgorithmError{Kind: NegativeTimeInterval}
	}
	timeBudgetSecs := int(end.Sub(start) / time.Second)

	sights := g.SightsInArea(area.Lat, area.Lon, area.Radius)
	if len(sights) == 0 {
		return nil, &AlgorithmError{Kind: NoSightsFound}
	}

	sightIDs := make([]int, 0, len(sights))
	for id := range sights {
		sightIDs = append(sightIDs, id)
	}
	sort.Ints(sightIDs)

	rootID := g.NearestNode(area.Lat, area.Lon)
	scores := scoring.Compute(sights, prefs)

	distFrom := make(map[int]*dijkstra.Result, len(sightIDs)+1)
	distFrom[rootID] = g.DijkstraOneToAllInArea(rootID, area.Lat, area.Lon, area.Radius)
	for _, id := range sightIDs {
		if _, ok := distFrom[id]; ok {
			continue
		}
		distFrom[id] = g.DijkstraOneToAllInArea(id, area.Lat, area.Lon, area.Radius)
	}

	return &SimAnneal{
		graph:           g,
		area:            area,
		walkingSpeedMPS: walkingSpeedMPS,
		timeBudgetSecs:  timeBudgetSecs,
		rootID:          rootID,
		sightIDs:        sightIDs,
		sights:          sights,
		scores:          scores,
		distFrom:        distFrom,
		rng:             rng,
	}, nil
}

// ComputeRoute runs the annealing search and materializes the best
// permutation found into a Route.
func (p *SimAnneal) ComputeRoute() (Route, error) {
	n := len(p.sightIDs)

	x := append([]int(nil), p.sightIDs...)
	p.rng.Shuffle(n, func(i, j int) { x[i], x[j] = x[j], x[i] })

	best := append([]int(nil), x...)
	bestScore := p.scoreOf(x)
	oldScore := bestScore

	t := annealT0
	itersPerEpoch := annealItersPerEpoch * n
	epochIter := 0
	nonImproving := 0
	bestAtEpochStart := bestScore

	start := time.Now()

	for {
		y := p.neighbor(x)
		newScore := p.scoreOf(y)
		delta := newScore - oldScore

		accept := delta >= 0
		if !accept {
			accept = p.rng.Float64() < math.Exp(float64(delta)/t)
		}
		if accept {
			x = y
			oldScore = newScore
		}

		if oldScore > bestScore {
			bestScore = oldScore
			best = append([]int(nil), x...)
		}

		epochIter++
		if epochIter == itersPerEpoch {
			t *= annealAlpha
			epochIter = 0

			if bestScore > bestAtEpochStart {
				nonImproving = 0
			} else {
				nonImproving++
			}
			bestAtEpochStart = bestScore

			if nonImproving >= annealNonImprovingLimit {
				break
			}
			if time.Since(start) > annealMaxWallTime {
				break
			}
		}
	}

	return p.materialize(best)
}

// CollectedScore sums the scores of visited sights.
func (p *SimAnneal) CollectedScore(route Route) int {
	return route.CollectedScore(p.scores)
}

// neighbor picks one of {swap, insert, reverse} uniformly and applies it to
// a copy of order. i==j is a natural no-op in all three operators.
func (p *SimAnneal) neighbor(order []int) []int {
	roll := p.rng.Float64()
	switch {
	case roll <= 1.0/3.0:
		return swapOp(p.rng, order)
	case roll <= 2.0/3.0:
		return insertOp(p.rng, order)
	default:
		return reverseOp(p.rng, order)
	}
}

func swapOp(rng *rand.Rand, order []int) []int {
	n := len(order)
	i, j := rng.Intn(n), rng.Intn(n)
	out := append([]int(nil), order...)
	out[i], out[j] = out[j], out[i]
	return out
}

func insertOp(rng *rand.Rand, order []int) []int {
	n := len(order)
	i, j := rng.Intn(n), rng.Intn(n)
	out := append([]int(nil), order...)
	if i == j {
		return out
	}
	val := out[i]
	if j < i {
		copy(out[j+1:i+1], out[j:i])
	} else {
		copy(out[i:j], out[i+1:j+1])
	}
	out[j] = val
	return out
}

func reverseOp(rng *rand.Rand, order []int) []int {
	n := len(order)
	i, j := rng.Intn(n), rng.Intn(n)
	if i > j {
		i, j = j, i
	}
	out := append([]int(nil), order...)
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// scoreOf sums the scores of the sights in order that remain reachable with
// cumulative time within budget, stopping at the first sight that would
// overflow the budget or that has no cached path from its predecessor.
func (p *SimAnneal) scoreOf(order []int) int {
	total := 0
	current := p.rootID
	timeUsed := 0.0
	for _, id := range order {
		dist, ok := p.distFrom[current].DistTo(id)
		if !ok {
			break
		}
		secs := float64(dist) / p.walkingSpeedMPS
		if timeUsed+secs > float64(p.timeBudgetSecs) {
			break
		}
		timeUsed += secs
		total += p.scores[id]
		current = id
	}
	return total
}

// materialize lifts a permutation into a Route by walking the same
// budget-feasible prefix as scoreOf, reconstructing real node paths from the
// precomputed distance tables, then appending the return-to-root sector.
func (p *SimAnneal) materialize(order []int) (Route, error) {
	var route Route
	current := p.rootID
	timeUsed := 0.0

	for _, id := range order {
		result := p.distFrom[current]
		dist, ok := result.DistTo(id)
		if !ok {
			break
		}
		secs := float64(dist) / p.walkingSpeedMPS
		if timeUsed+secs > float64(p.timeBudgetSecs) {
			break
		}
		timeUsed += secs

		path, _ := result.PathTo(id)
		sight := p.sights[id]
		kind := Intermediate
		if current == p.rootID {
			kind = Start
		}
		route = append(route, RouteSector{
			Kind: kind,
			Sector: Sector{
				TimeBudget: int(math.Floor(secs)),
				Sight:      &sight,
				Nodes:      nodesFromIDs(p.graph, path),
			},
		})
		current = id
	}

	if len(route) == 0 {
		return Route{}, nil
	}

	result := p.distFrom[current]
	dist, ok := result.DistTo(p.rootID)
	if !ok {
		return nil, &AlgorithmError{Kind: NoRouteFound, From: current, To: p.rootID}
	}
	path, _ := result.PathTo(p.rootID)
	route = append(route, RouteSector{
		Kind: End,
		Sector: Sector{
			TimeBudget: int(math.Floor(float64(dist) / p.walkingSpeedMPS)),
			Nodes:      nodesFromIDs(p.graph, path),
		},
	})
	return route, nil
}
