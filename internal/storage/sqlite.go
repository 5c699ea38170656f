// Package storage provides SQLite-based persistence for replay runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the run archive.
type Store struct {
	db *sql.DB
}

// RunRecord is one archived trace: which scenario ran, how long, where
// the player ended up, and the trace hash other hosts must reproduce.
type RunRecord struct {
	ID        int64
	Scenario  string
	Frames    int
	TraceHash uint64
	FinalX    float64
	FinalY    float64
	Jumped    int
	Landed    int
	Bonked    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			frames INTEGER NOT NULL,
			trace_hash TEXT NOT NULL,
			final_x REAL NOT NULL,
			final_y REAL NOT NULL,
			jumped INTEGER NOT NULL DEFAULT 0,
			landed INTEGER NOT NULL DEFAULT 0,
			bonked INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(scenario, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun archives one completed run and returns its row ID. The hash is
// stored as hex text; SQLite integers are signed 64-bit and would mangle
// the high bit.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario, frames, trace_hash, final_x, final_y, jumped, landed, bonked)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.Frames, fmt.Sprintf("%016x", r.TraceHash),
		r.FinalX, r.FinalY, r.Jumped, r.Landed, r.Bonked,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return result.LastInsertId()
}

// Runs returns the most recent runs for a scenario, newest first. An
// empty scenario name returns runs across all scenarios.
func (s *Store) Runs(scenario string, limit int) ([]RunRecord, error) {
	query := `SELECT id, scenario, frames, trace_hash, final_x, final_y,
	                 jumped, landed, bonked, created_at
	          FROM runs`
	args := []any{}
	if scenario != "" {
		query += ` WHERE scenario = ?`
		args = append(args, scenario)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var result []RunRecord
	for rows.Next() {
		var r RunRecord
		var hash string
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Frames, &hash,
			&r.FinalX, &r.FinalY, &r.Jumped, &r.Landed, &r.Bonked, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		if _, err := fmt.Sscanf(hash, "%x", &r.TraceHash); err != nil {
			return nil, fmt.Errorf("storage: corrupt trace hash %q: %w", hash, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// LastHash returns the trace hash of the most recent run for a scenario.
// The boolean is false when no run is archived yet.
func (s *Store) LastHash(scenario string) (uint64, bool, error) {
	runs, err := s.Runs(scenario, 1)
	if err != nil {
		return 0, false, err
	}
	if len(runs) == 0 {
		return 0, false, nil
	}
	return runs[0].TraceHash, true, nil
}
