// Package ingest turns an OSM PBF extract into the FMI graph rows consumed
// by internal/graph: dense node ids, distance-weighted undirected edges, and
// classified sights.
package ingest

import (
	"log/slog"
	"sort"

	"wayfarer/internal/category"
	"wayfarer/internal/fmi"
	"wayfarer/internal/geo"
)

// RawNode is a graph-relevant node as read from the PBF, still keyed by its
// OSM id.
type RawNode struct {
	OSMID    int64
	Lat, Lon float64
}

// RawEdge is one directed hop of a way, still keyed by OSM node ids.
type RawEdge struct {
	OSMSrc, OSMTgt int64
}

// RawSight is a classified sight node, still keyed by its OSM id.
type RawSight struct {
	OSMID    int64
	Lat, Lon float64
	Category category.Category
}

// AssignDenseIDs assigns a dense id in [0, N) to every distinct OSM node id
// in nodes, in first-seen order. A later occurrence of an OSM id already
// seen is a duplicate PBF record for the same node; it is logged and its
// coordinates overwrite the earlier ones (resolved Open Question 2,
// SPEC_FULL.md §9) rather than rejected.
func AssignDenseIDs(nodes []RawNode, logger *slog.Logger) (ids map[int64]int, ordered []RawNode) {
	ids = make(map[int64]int, len(nodes))
	ordered = make([]RawNode, 0, len(nodes))
	for _, n := range nodes {
		if idx, dup := ids[n.OSMID]; dup {
			logger.Info("duplicate osm node id, overwriting coordinates", "osm_id", n.OSMID, "node_id", idx)
			ordered[idx] = n
			continue
		}
		ids[n.OSMID] = len(ordered)
		ordered = append(ordered, n)
	}
	return ids, ordered
}

// ResolveEdges maps OSM-id edges onto dense node ids and computes their
// great-circle distance in meters. An edge referencing an OSM id absent from
// ids is dropped rather than failing the whole ingest: a way can reference a
// node filtered out upstream (outside the extract's bounding box).
func ResolveEdges(rawEdges []RawEdge, ids map[int64]int, nodes []RawNode) []fmi.Edge {
	out := make([]fmi.Edge, 0, len(rawEdges))
	for _, e := range rawEdges {
		src, ok := ids[e.OSMSrc]
		if !ok {
			continue
		}
		tgt, ok := ids[e.OSMTgt]
		if !ok {
			continue
		}
		srcNode, tgtNode := nodes[src], nodes[tgt]
		dist := int(geo.Haversine(srcNode.Lat, srcNode.Lon, tgtNode.Lat, tgtNode.Lon))
		out = append(out, fmi.Edge{Src: src, Tgt: tgt, Dist: dist})
	}
	return out
}

// PruneParallelEdges sorts edges by (Src, Tgt) and collapses parallel edges
// between the same ordered pair down to the single shortest one.
func PruneParallelEdges(edges []fmi.Edge) []fmi.Edge {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}
		return edges[i].Tgt < edges[j].Tgt
	})

	out := make([]fmi.Edge, 0, len(edges))
	for _, e := range edges {
		if n := len(out); n > 0 && out[n-1].Src == e.Src && out[n-1].Tgt == e.Tgt {
			if e.Dist < out[n-1].Dist {
				out[n-1].Dist = e.Dist
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// AssignSightNodeIDs maps raw sights onto the dense node id their OSM id was
// assigned in AssignDenseIDs.
func AssignSightNodeIDs(sights []RawSight, ids map[int64]int) []fmi.Sight {
	out := make([]fmi.Sight, 0, len(sights))
	for _, s := range sights {
		nodeID, ok := ids[s.OSMID]
		if !ok {
			continue
		}
		out = append(out, fmi.Sight{NodeID: nodeID, Lat: s.Lat, Lon: s.Lon, Category: s.Category})
	}
	return out
}

// ToFMINodes converts resolved RawNodes into fmi.Node rows, dense id order.
func ToFMINodes(nodes []RawNode) []fmi.Node {
	out := make([]fmi.Node, len(nodes))
	for i, n := range nodes {
		out[i] = fmi.Node{ID: i, Lat: n.Lat, Lon: n.Lon}
	}
	return out
}
