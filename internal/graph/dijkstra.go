package graph

import "wayfarer/internal/dijkstra"

func (g *Graph) successorsAll() dijkstra.Successors {
	return func(u int) []dijkstra.Neighbor {
		edges := g.OutgoingEdges(u)
		out := make([]dijkstra.Neighbor, len(edges))
		for i, e := range edges {
			out[i] = dijkstra.Neighbor{Target: e.Tgt, Dist: e.Dist}
		}
		return out
	}
}

// DijkstraOneToAll runs unrestricted one-to-all Dijkstra from src over the
// full graph.
func (g *Graph) DijkstraOneToAll(src int) *dijkstra.Result {
	return dijkstra.OneToAll(len(g.nodes), src, g.successorsAll())
}

// DijkstraPointToPoint runs unrestricted point-to-point Dijkstra over the
// full graph.
func (g *Graph) DijkstraPointToPoint(src, tgt int) (dist int, path []int, ok bool) {
	return dijkstra.PointToPoint(len(g.nodes), src, tgt, g.successorsAll())
}
