// Command graphbuild converts an OSM PBF extract into the FMI graph file
// wayfarer serves routes from, recording each run in a SQLite audit log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"wayfarer/internal/ingest"
	"wayfarer/internal/ingestlog"
)

func main() {
	pbfPath := flag.String("pbf", "", "path to the OSM PBF extract")
	sightsConfigPath := flag.String("sights-config", "", "path to the category_tag_map JSON config")
	outPath := flag.String("out", "./graph.fmi", "path to write the resulting FMI graph file")
	logPath := flag.String("log-db", "./graphbuild.sqlite3", "path to the ingest run audit log")
	recent := flag.Int("recent", 0, "print the N most recent runs from the audit log and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	runLog, err := ingestlog.Open(*logPath, logger)
	if err != nil {
		logger.Error("failed to open ingest run log", "error", err)
		os.Exit(1)
	}
	defer runLog.Close()

	ctx := context.Background()

	if *recent > 0 {
		printRecentRuns(ctx, runLog, *recent, logger)
		return
	}

	if *pbfPath == "" || *sightsConfigPath == "" {
		logger.Error("both -pbf and -sights-config are required")
		os.Exit(1)
	}

	startedAt := time.Now().UTC().Format(time.RFC3339)
	runID, err := runLog.StartRun(ctx, startedAt, *pbfPath, *sightsConfigPath, *outPath)
	if err != nil {
		logger.Error("failed to record run start", "error", err)
		os.Exit(1)
	}

	counts, err := ingest.BuildAndWrite(ctx, *pbfPath, *sightsConfigPath, *outPath, logger)
	if err != nil {
		logger.Error("graph build failed", "error", err)
		_ = runLog.FailRun(ctx, runID, time.Now().UTC().Format(time.RFC3339), err.Error())
		os.Exit(1)
	}

	if err := runLog.FinishRun(ctx, runID, time.Now().UTC().Format(time.RFC3339), counts.Nodes, counts.Edges, counts.Sights); err != nil {
		logger.Error("failed to record run completion", "error", err)
		os.Exit(1)
	}
}

// printRecentRuns satisfies -recent's stated inspection purpose: a quick
// look at past graphbuild invocations without a separate SQLite client.
func printRecentRuns(ctx context.Context, runLog *ingestlog.DB, limit int, logger *slog.Logger) {
	runs, err := runLog.RecentRuns(ctx, limit)
	if err != nil {
		logger.Error("failed to read recent runs", "error", err)
		os.Exit(1)
	}
	for _, r := range runs {
		status := "running"
		if r.Error.Valid {
			status = "failed: " + r.Error.String
		} else if r.FinishedAt.Valid {
			status = "ok"
		}
		fmt.Printf("%d\t%s\t%s\t%s\tnodes=%d edges=%d sights=%d\t%s\n",
			r.ID, r.StartedAt, r.PBFPath, r.GraphOutPath, r.NumNodes.Int64, r.NumEdges.Int64, r.NumSights.Int64, status)
	}
}
