// Package ingestlog records an append-only audit trail of graph-build runs
// in SQLite: every cmd/graphbuild invocation, its inputs, and its resulting
// node/edge/sight counts. It is run-history bookkeeping, never consulted at
// routing time — the runtime graph always comes from the FMI file on disk.
package ingestlog

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a SQLite connection holding the ingest run history.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Open creates or opens the ingest log database at path and applies
// migrations.
func Open(path string, logger *slog.Logger) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ingest log database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping ingest log database: %w", err)
	}

	db := &DB{DB: sqlDB, logger: logger}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate ingest log database: %w", err)
	}

	logger.Info("ingest log database opened", "path", path)
	return db, nil
}
