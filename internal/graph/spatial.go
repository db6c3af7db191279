package graph

import (
	"math"
	"sort"

	"wayfarer/internal/dijkstra"
	"wayfarer/internal/geo"
)

// NearestNode returns the node id closest to (lat, lon) by great-circle
// distance, excluding sight nodes. Operates on a lazily built lat-sorted
// view, expanding symmetrically from the binary-search landing point with a
// sweep-line early-termination bound. Returns -1 if the graph has no nodes.
func (g *Graph) NearestNode(lat, lon float64) int {
	idx := g.latSortedNodes()
	n := len(idx)
	if n == 0 {
		return -1
	}
	excluded := g.sightNodeSet()

	landing := sort.Search(n, func(i int) bool { return g.nodes[idx[i]].Lat >= lat })

	best := -1
	bestDist := math.MaxFloat64

	consider := func(cand int) {
		if _, isSight := excluded[cand]; isSight {
			return
		}
		d := geo.Haversine(g.nodes[cand].Lat, g.nodes[cand].Lon, lat, lon)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	// boundExceeds computes the minimum possible distance for any node at
	// cand's latitude — if that alone is no better than the best full
	// distance seen so far, this side of the sweep can stop.
	boundExceeds := func(cand int) bool {
		if best == -1 {
			return false
		}
		bound := geo.Haversine(g.nodes[cand].Lat, lon, lat, lon)
		return bound >= bestDist
	}

	left := landing - 1
	right := landing
	leftAlive := left >= 0
	rightAlive := right < n

	for leftAlive || rightAlive {
		if leftAlive {
			cand := idx[left]
			if boundExceeds(cand) {
				leftAlive = false
			} else {
				consider(cand)
				left--
				leftAlive = left >= 0
			}
		}
		if rightAlive {
			cand := idx[right]
			if boundExceeds(cand) {
				rightAlive = false
			} else {
				consider(cand)
				right++
				rightAlive = right < n
			}
		}
	}

	return best
}

// OutgoingInArea returns the subset of u's outgoing edges whose target lies
// within radius meters of (clat, clon).
func (g *Graph) OutgoingInArea(u int, clat, clon, radius float64) []Edge {
	edges := g.OutgoingEdges(u)
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		tgt := g.nodes[e.Tgt]
		if geo.Haversine(tgt.Lat, tgt.Lon, clat, clon) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// successorsInArea builds a dijkstra.Successors closure restricted to edges
// whose target lies within radius of (clat, clon).
func (g *Graph) successorsInArea(clat, clon, radius float64) dijkstra.Successors {
	return func(u int) []dijkstra.Neighbor {
		edges := g.OutgoingInArea(u, clat, clon, radius)
		out := make([]dijkstra.Neighbor, len(edges))
		for i, e := range edges {
			out[i] = dijkstra.Neighbor{Target: e.Tgt, Dist: e.Dist}
		}
		return out
	}
}

// sightsByLatRange returns the slice of sights whose Lat falls within
// [minLat, maxLat], located via binary search on the lat-sorted sight list.
func (g *Graph) sightsByLatRange(minLat, maxLat float64) []Sight {
	lo := sort.Search(len(g.sights), func(i int) bool { return g.sights[i].Lat >= minLat })
	hi := sort.Search(len(g.sights), func(i int) bool { return g.sights[i].Lat > maxLat })
	if lo >= hi {
		return nil
	}
	return g.sights[lo:hi]
}

// SightsInArea returns all sights within radius meters of (clat, clon), with
// no reachability constraint — a superset of what ReachableSights returns
// for the same radius, and the simulated-annealing planner's unrestricted
// candidate set.
func (g *Graph) SightsInArea(clat, clon, radius float64) map[int]Sight {
	latDeg, _ := geo.BoundingBoxRadius(clat, radius)
	candidates := g.sightsByLatRange(clat-latDeg, clat+latDeg)

	out := make(map[int]Sight)
	for _, s := range candidates {
		if geo.Haversine(s.Lat, s.Lon, clat, clon) <= radius {
			out[s.NodeID] = s
		}
	}
	return out
}

// ReachableSights returns the sights within sightRadius of (clat, clon) that
// are also reachable from the area anchor (the nearest non-sight node) under
// an edge-radius-restricted adjacency. edgeRadius is normally larger than
// sightRadius so round trips that graze the boundary are not cut off.
func (g *Graph) ReachableSights(clat, clon, sightRadius, edgeRadius float64) map[int]Sight {
	anchor := g.NearestNode(clat, clon)
	if anchor == -1 {
		return map[int]Sight{}
	}

	result := dijkstra.OneToAll(len(g.nodes), anchor, g.successorsInArea(clat, clon, edgeRadius))

	latDeg, _ := geo.BoundingBoxRadius(clat, sightRadius)
	candidates := g.sightsByLatRange(clat-latDeg, clat+latDeg)

	out := make(map[int]Sight)
	for _, s := range candidates {
		if _, reached := result.DistTo(s.NodeID); !reached {
			continue
		}
		if geo.Haversine(s.Lat, s.Lon, clat, clon) <= sightRadius {
			out[s.NodeID] = s
		}
	}
	return out
}

// DijkstraOneToAllInArea exposes the area-restricted one-to-all engine for planner use.
func (g *Graph) DijkstraOneToAllInArea(src int, clat, clon, edgeRadius float64) *dijkstra.Result {
	return dijkstra.OneToAll(len(g.nodes), src, g.successorsInArea(clat, clon, edgeRadius))
}

// DijkstraPointToPointInArea runs point-to-point Dijkstra restricted to the
// area-restricted adjacency.
func (g *Graph) DijkstraPointToPointInArea(src, tgt int, clat, clon, edgeRadius float64) (dist int, path []int, ok bool) {
	return dijkstra.PointToPoint(len(g.nodes), src, tgt, g.successorsInArea(clat, clon, edgeRadius))
}
