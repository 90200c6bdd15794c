// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
// It is safe for concurrent use by several sessions.
type Store struct {
	db *sql.DB
}

// Run is one finished session on a layout.
type Run struct {
	ID         int64
	Layout     string
	Difficulty string
	Score      int
	Ticks      uint64
	Outcome    string // "cleared", "ball_lost" or "quit"
	CreatedAt  time.Time
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
			layout TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(layout);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(layout, score DESC, ticks ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Layout == "" {
		return 0, errors.New("storage: run has no layout")
	}
	if r.Difficulty == "" {
		r.Difficulty = "normal"
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (layout, difficulty, score, ticks, outcome) VALUES (?, ?, ?, ?, ?)",
		r.Layout, r.Difficulty, r.Score, int64(r.Ticks), r.Outcome, //#nosec G115 -- tick counts fit in int64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for the given layout.
// Higher scores rank first; equal scores rank the faster run first.
func (s *Store) TopRuns(layout string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, layout, difficulty, score, ticks, outcome, created_at
		 FROM runs
		 WHERE layout = ?
		 ORDER BY score DESC, ticks ASC, id ASC
		 LIMIT ?`,
		layout, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Layout, &r.Difficulty, &r.Score, &ticks, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given layout.
// Returns 0 if no runs exist.
func (s *Store) HighScore(layout string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE layout = ?",
		layout,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given layout.
func (s *Store) ClearRuns(layout string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE layout = ?", layout)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LayoutStats contains aggregated statistics for a layout.
type LayoutStats struct {
	Layout     string
	Runs       int
	Cleared    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific layout.
func (s *Store) Stats(layout string) (*LayoutStats, error) {
	stats := &LayoutStats{Layout: layout}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        MAX(created_at)
		 FROM runs WHERE layout = ?`,
		layout,
	).Scan(&stats.Runs, &stats.Cleared, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get layout stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every layout that has been played.
func (s *Store) AllStats() (map[string]*LayoutStats, error) {
	rows, err := s.db.Query(
		`SELECT layout, COUNT(*),
		        SUM(CASE WHEN outcome = 'cleared' THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 GROUP BY layout`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all layout stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LayoutStats)
	for rows.Next() {
		var st LayoutStats
		var lastPlayed any
		if err := rows.Scan(&st.Layout, &st.Runs, &st.Cleared, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Layout] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
