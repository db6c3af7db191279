package ingestlog

import (
	"context"
	"database/sql"
)

// Run is one recorded graph-build invocation.
type Run struct {
	ID                                 int64
	StartedAt                          string
	FinishedAt                         sql.NullString
	PBFPath, SightsConfig, GraphOutPath string
	NumNodes, NumEdges, NumSights      sql.NullInt64
	Error                              sql.NullString
}

// StartRun inserts a new in-progress run row and returns its id.
func (db *DB) StartRun(ctx context.Context, startedAt, pbfPath, sightsConfig, graphOutPath string) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO ingest_runs (started_at, pbf_path, sights_config, graph_out_path) VALUES (?, ?, ?, ?)`,
		startedAt, pbfPath, sightsConfig, graphOutPath)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FinishRun records a successful run's completion and output counts.
func (db *DB) FinishRun(ctx context.Context, id int64, finishedAt string, numNodes, numEdges, numSights int) error {
	_, err := db.ExecContext(ctx,
		`UPDATE ingest_runs SET finished_at = ?, num_nodes = ?, num_edges = ?, num_sights = ? WHERE id = ?`,
		finishedAt, numNodes, numEdges, numSights, id)
	return err
}

// FailRun records a run's failure.
func (db *DB) FailRun(ctx context.Context, id int64, finishedAt, errMsg string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE ingest_runs SET finished_at = ?, error = ? WHERE id = ?`,
		finishedAt, errMsg, id)
	return err
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, pbf_path, sights_config, graph_out_path, num_nodes, num_edges, num_sights, error
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.PBFPath, &r.SightsConfig, &r.GraphOutPath, &r.NumNodes, &r.NumEdges, &r.NumSights, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
