package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"wayfarer/internal/ingestconfig"
)

// ParseFile reads an OSM PBF extract at path and returns its nodes, edges
// and classified sights, still keyed by OSM id (dense-id assignment and edge
// resolution happen afterward in Build). osmpbf.New parallelizes blob
// decoding internally across runtime.NumCPU blocks; classification of each
// scanned node happens inline on the decode goroutine since it is a cheap
// map lookup, not a separate worker pool.
//
// The file is scanned twice: once for ways (to determine which node ids are
// street nodes and to collect the edge list), once for nodes (to classify
// sights and collect coordinates for street nodes and sight nodes only —
// completing a node-filtering step the original ingest left as a TODO).
func ParseFile(ctx context.Context, path string, classifier *ingestconfig.Classifier, logger *slog.Logger) ([]RawNode, []RawEdge, []RawSight, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	streetNodes := make(map[int64]struct{})
	var rawEdges []RawEdge

	wayScanner := osmpbf.New(ctx, f, runtime.NumCPU())
	wayScanner.SkipNodes = true
	wayScanner.SkipRelations = true
	defer wayScanner.Close()

	numWays := 0
	for wayScanner.Scan() {
		w, ok := wayScanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 {
			continue
		}
		numWays++
		src := int64(w.Nodes[0].ID)
		streetNodes[src] = struct{}{}
		for _, wn := range w.Nodes[1:] {
			tgt := int64(wn.ID)
			streetNodes[tgt] = struct{}{}
			rawEdges = append(rawEdges, RawEdge{OSMSrc: src, OSMTgt: tgt})
			rawEdges = append(rawEdges, RawEdge{OSMSrc: tgt, OSMTgt: src})
			src = tgt
		}
	}
	if err := wayScanner.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("ingest: scanning ways: %w", err)
	}
	logger.Info("finished scanning ways", "ways", numWays, "street_nodes", len(streetNodes))

	if _, err := f.Seek(0, 0); err != nil {
		return nil, nil, nil, fmt.Errorf("ingest: seeking for node pass: %w", err)
	}

	var rawNodes []RawNode
	var rawSights []RawSight

	nodeScanner := osmpbf.New(ctx, f, runtime.NumCPU())
	nodeScanner.SkipWays = true
	nodeScanner.SkipRelations = true
	defer nodeScanner.Close()

	for nodeScanner.Scan() {
		n, ok := nodeScanner.Object().(*osm.Node)
		if !ok {
			continue
		}

		tags := make([]ingestconfig.TagPair, len(n.Tags))
		for i, tag := range n.Tags {
			tags[i] = ingestconfig.TagPair{Key: tag.Key, Value: tag.Value}
		}

		if cat, isSight := classifier.Classify(tags); isSight {
			rawSights = append(rawSights, RawSight{OSMID: int64(n.ID), Lat: n.Lat, Lon: n.Lon, Category: cat})
			rawNodes = append(rawNodes, RawNode{OSMID: int64(n.ID), Lat: n.Lat, Lon: n.Lon})
			continue
		}

		if _, isStreetNode := streetNodes[int64(n.ID)]; isStreetNode {
			rawNodes = append(rawNodes, RawNode{OSMID: int64(n.ID), Lat: n.Lat, Lon: n.Lon})
		}
	}
	if err := nodeScanner.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("ingest: scanning nodes: %w", err)
	}
	logger.Info("finished scanning nodes", "nodes", len(rawNodes), "sights", len(rawSights))

	return rawNodes, rawEdges, rawSights, nil
}
