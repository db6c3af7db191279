// Package dijkstra implements the single-source shortest-path engine shared
// by spatial queries and both planners. It is deliberately independent of
// the graph package: callers supply a Successors closure, so the same engine
// serves the unrestricted graph and any area-restricted view of it.
package dijkstra

import "wayfarer/internal/heap"

// Neighbor is one outgoing edge as seen by the engine: a target node id and
// an edge weight in meters.
type Neighbor struct {
	Target int
	Dist   int
}

// Successors returns the out-edges of node u to relax.
type Successors func(u int) []Neighbor

// Infinite is the sentinel distance for unreached nodes.
const Infinite = int(^uint(0) >> 1)

const noPred = -1

// Result holds one-to-all shortest-path distances and predecessors from a
// single source, over n nodes.
type Result struct {
	Dist []int
	Pred []int
}

// DistTo returns the distance from the source to target, or (Infinite, false)
// if target was never reached.
func (r *Result) DistTo(target int) (int, bool) {
	d := r.Dist[target]
	return d, d != Infinite
}

// PathTo reconstructs the path from the source to target by walking
// predecessors backward and reversing. Returns (nil, false) if unreached.
func (r *Result) PathTo(target int) ([]int, bool) {
	if r.Dist[target] == Infinite {
		return nil, false
	}
	var path []int
	for at := target; at != noPred; at = r.Pred[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

func newState(n int) ([]int, []int) {
	dist := make([]int, n)
	pred := make([]int, n)
	for i := range dist {
		dist[i] = Infinite
		pred[i] = noPred
	}
	return dist, pred
}

// PointToPoint runs Dijkstra from src, stopping as soon as tgt is popped from
// the frontier. Returns the distance and reconstructed path, or ok=false if
// no path exists.
func PointToPoint(n, src, tgt int, succ Successors) (dist int, path []int, ok bool) {
	dists, preds := newState(n)
	dists[src] = 0
	pq := heap.WithCapacity(n)
	pq.Push(src, dists)

	for !pq.IsEmpty() {
		u := pq.Pop(dists)
		if u == tgt {
			break
		}
		relax(u, dists, preds, pq, succ)
	}

	if dists[tgt] == Infinite {
		return 0, nil, false
	}
	p, _ := (&Result{Dist: dists, Pred: preds}).PathTo(tgt)
	return dists[tgt], p, true
}

// OneToAll runs Dijkstra from src until the frontier is exhausted, yielding
// distances and predecessors for every reachable node.
func OneToAll(n, src int, succ Successors) *Result {
	dists, preds := newState(n)
	dists[src] = 0
	pq := heap.WithCapacity(n)
	pq.Push(src, dists)

	for !pq.IsEmpty() {
		u := pq.Pop(dists)
		relax(u, dists, preds, pq, succ)
	}

	return &Result{Dist: dists, Pred: preds}
}

func relax(u int, dists, preds []int, pq *heapQueue, succ Successors) {
	for _, e := range succ(u) {
		nd := dists[u] + e.Dist
		if nd < dists[e.Target] {
			dists[e.Target] = nd
			preds[e.Target] = u
			pq.InsertOrUpdate(e.Target, dists)
		}
	}
}

type heapQueue = heap.IndexedMinHeap
