// Package graph holds the in-memory road graph: dense-id nodes, a sorted
// edge list with an offsets index, and a lat-sorted sight list. The graph is
// built once from an FMI file and never mutated afterward; all planners and
// request handlers share it read-only.
package graph

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"wayfarer/internal/category"
	"wayfarer/internal/fmi"
)

// Node is a road-network vertex with a dense id in [0, N).
type Node struct {
	ID       int     `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Edge is a directed, weighted road segment.
type Edge struct {
	Src, Tgt int
	Dist     int // meters
}

// Sight is a tourist attraction snapped to a graph node. Its stable id is
// the node id it snaps to.
type Sight struct {
	NodeID   int               `json:"id"`
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Category category.Category `json:"category"`
}

// InvariantError reports a violated graph data-model invariant (see
// SPEC_FULL.md §3). It is distinct from fmi.ParseError: the FMI text
// decoded cleanly, but the rows it described were not a valid graph.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "graph: invariant violated: " + e.Detail
}

// Graph is the immutable, offset-indexed road graph plus its sights.
type Graph struct {
	nodes   []Node
	edges   []Edge // sorted by (Src, Tgt)
	offsets []int  // len(offsets) == len(nodes)+1
	sights  []Sight

	latSortedOnce sync.Once
	latSorted     []int // indices into nodes, sorted by Lat ascending
	sightNodeIDs  map[int]struct{}
}

// Load reads an FMI file from path and builds a validated Graph.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &fmi.ParseError{Kind: fmi.KindIO, Err: err}
	}
	defer f.Close()

	data, err := fmi.Decode(f)
	if err != nil {
		return nil, err
	}
	return FromRaw(data)
}

// FromRaw builds a Graph from decoded FMI rows, building offsets in a single
// pass and validating the data-model invariants.
func FromRaw(data *fmi.Data) (*Graph, error) {
	g := &Graph{
		nodes: make([]Node, len(data.Nodes)),
		edges: make([]Edge, len(data.Edges)),
	}
	for i, n := range data.Nodes {
		g.nodes[i] = Node{ID: n.ID, Lat: n.Lat, Lon: n.Lon}
	}
	for i, e := range data.Edges {
		g.edges[i] = Edge{Src: e.Src, Tgt: e.Tgt, Dist: e.Dist}
	}

	g.sights = make([]Sight, len(data.Sights))
	for i, s := range data.Sights {
		g.sights[i] = Sight{NodeID: s.NodeID, Lat: s.Lat, Lon: s.Lon, Category: s.Category}
	}
	sort.Slice(g.sights, func(i, j int) bool { return g.sights[i].Lat < g.sights[j].Lat })

	g.buildOffsets()

	if err := g.checkInvariants(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildOffsets constructs offsets[u]..offsets[u+1] = slice of u's outgoing
// edges, assuming edges are sorted by (Src, Tgt). Detects src transitions in
// a single forward pass and fills trailing gaps to len(edges).
func (g *Graph) buildOffsets() {
	n := len(g.nodes)
	g.offsets = make([]int, n+1)
	next := 0
	for i, e := range g.edges {
		for next <= e.Src && next < n {
			g.offsets[next] = i
			next++
		}
	}
	for next <= n {
		g.offsets[next] = len(g.edges)
		next++
	}
}

func (g *Graph) checkInvariants() error {
	n := len(g.nodes)
	if len(g.offsets) != n+1 {
		return &InvariantError{Detail: fmt.Sprintf("offsets length %d, want %d", len(g.offsets), n+1)}
	}
	if g.offsets[0] != 0 {
		return &InvariantError{Detail: "offsets[0] != 0"}
	}
	if g.offsets[n] != len(g.edges) {
		return &InvariantError{Detail: "offsets[N] != len(edges)"}
	}
	for i := 1; i <= n; i++ {
		if g.offsets[i] < g.offsets[i-1] {
			return &InvariantError{Detail: "offsets not monotonically non-decreasing"}
		}
	}

	seen := make(map[[2]int]int, len(g.edges))
	for i, e := range g.edges {
		if e.Src < 0 || e.Src >= n || e.Tgt < 0 || e.Tgt >= n {
			return &InvariantError{Detail: fmt.Sprintf("edge %d references out-of-range node", i)}
		}
		key := [2]int{e.Src, e.Tgt}
		if _, dup := seen[key]; dup {
			return &InvariantError{Detail: fmt.Sprintf("duplicate edge (%d,%d)", e.Src, e.Tgt)}
		}
		seen[key] = e.Dist
		if i > 0 {
			prev := g.edges[i-1]
			if e.Src < prev.Src || (e.Src == prev.Src && e.Tgt < prev.Tgt) {
				return &InvariantError{Detail: "edges not sorted by (src,tgt)"}
			}
		}
	}
	for key, dist := range seen {
		twin := [2]int{key[1], key[0]}
		twinDist, ok := seen[twin]
		if !ok {
			return &InvariantError{Detail: fmt.Sprintf("edge (%d,%d) has no reverse twin", key[0], key[1])}
		}
		if twinDist != dist {
			return &InvariantError{Detail: fmt.Sprintf("edge (%d,%d) and its reverse twin differ in distance", key[0], key[1])}
		}
	}

	for i, s := range g.sights {
		if s.NodeID < 0 || s.NodeID >= n {
			return &InvariantError{Detail: fmt.Sprintf("sight %d references out-of-range node %d", i, s.NodeID)}
		}
		if i > 0 && g.sights[i-1].Lat > s.Lat {
			return &InvariantError{Detail: "sights not sorted by lat ascending"}
		}
	}

	return nil
}

// Node returns the node with the given id. Panics if id is out of range,
// matching slice-index semantics — callers are expected to pass ids that
// came from the graph itself.
func (g *Graph) Node(id int) Node {
	return g.nodes[id]
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// OutgoingEdges returns the slice of u's outgoing edges via the offsets index.
func (g *Graph) OutgoingEdges(u int) []Edge {
	return g.edges[g.offsets[u]:g.offsets[u+1]]
}

// Degree returns the out-degree of u.
func (g *Graph) Degree(u int) int {
	return g.offsets[u+1] - g.offsets[u]
}

// Sights returns all sights, sorted by latitude ascending.
func (g *Graph) Sights() []Sight {
	return g.sights
}

func (g *Graph) sightNodeSet() map[int]struct{} {
	g.latSortedOnce.Do(g.buildLatIndex)
	return g.sightNodeIDs
}

func (g *Graph) buildLatIndex() {
	n := len(g.nodes)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return g.nodes[idx[i]].Lat < g.nodes[idx[j]].Lat })
	g.latSorted = idx

	ids := make(map[int]struct{}, len(g.sights))
	for _, s := range g.sights {
		ids[s.NodeID] = struct{}{}
	}
	g.sightNodeIDs = ids
}

func (g *Graph) latSortedNodes() []int {
	g.latSortedOnce.Do(g.buildLatIndex)
	return g.latSorted
}
