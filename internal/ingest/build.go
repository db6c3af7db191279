package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"wayfarer/internal/fmi"
	"wayfarer/internal/ingestconfig"
)

// Build runs the full ingest pipeline over an OSM PBF extract: parse, assign
// dense node ids, resolve and prune edges, and classify sights into an
// fmi.Data ready for fmi.Encode.
func Build(ctx context.Context, pbfPath string, classifier *ingestconfig.Classifier, logger *slog.Logger) (*fmi.Data, error) {
	rawNodes, rawEdges, rawSights, err := ParseFile(ctx, pbfPath, classifier, logger)
	if err != nil {
		return nil, err
	}

	ids, nodes := AssignDenseIDs(rawNodes, logger)
	logger.Info("assigned dense node ids", "nodes", len(nodes))

	edges := ResolveEdges(rawEdges, ids, nodes)
	before := len(edges)
	edges = PruneParallelEdges(edges)
	logger.Info("pruned parallel edges", "before", before, "after", len(edges))

	sights := AssignSightNodeIDs(rawSights, ids)

	return &fmi.Data{
		Nodes:  ToFMINodes(nodes),
		Sights: sights,
		Edges:  edges,
	}, nil
}

// Counts reports the size of a written FMI file, for callers (cmd/graphbuild's
// run log) that need it without re-reading data.
type Counts struct {
	Nodes, Sights, Edges int
}

// BuildAndWrite runs Build and writes the resulting FMI rows to outPath,
// returning the row counts written.
func BuildAndWrite(ctx context.Context, pbfPath, sightsConfigPath, outPath string, logger *slog.Logger) (Counts, error) {
	cfg, err := ingestconfig.Load(sightsConfigPath)
	if err != nil {
		return Counts{}, err
	}
	classifier := ingestconfig.NewClassifier(cfg)

	data, err := Build(ctx, pbfPath, classifier, logger)
	if err != nil {
		return Counts{}, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return Counts{}, fmt.Errorf("ingest: create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := fmi.Encode(out, data.Nodes, data.Sights, data.Edges); err != nil {
		return Counts{}, fmt.Errorf("ingest: encode fmi file: %w", err)
	}
	counts := Counts{Nodes: len(data.Nodes), Sights: len(data.Sights), Edges: len(data.Edges)}
	logger.Info("wrote fmi file", "path", outPath, "nodes", counts.Nodes, "sights", counts.Sights, "edges", counts.Edges)
	return counts, nil
}
