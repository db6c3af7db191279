package ingestlog

import "fmt"

func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("ingest log migrations applied")
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ingest_runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at     TEXT NOT NULL,
		finished_at    TEXT,
		pbf_path       TEXT NOT NULL,
		sights_config  TEXT NOT NULL,
		graph_out_path TEXT NOT NULL,
		num_nodes      INTEGER,
		num_edges      INTEGER,
		num_sights     INTEGER,
		error          TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ingest_runs_started ON ingest_runs(started_at)`,
}
