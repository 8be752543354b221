// Package db stores build reports: every tab a render run produced, so the
// placeholders a build degraded to can be listed afterwards.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_run_id START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS seq_tab_id START 1;`,

		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			pages INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS tabs (
			id INTEGER PRIMARY KEY,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			page TEXT NOT NULL,
			block_index INTEGER NOT NULL,
			label TEXT NOT NULL,
			symbol TEXT NOT NULL,
			heading TEXT,
			link TEXT,
			placeholder BOOLEAN NOT NULL,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tabs_run ON tabs (run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tabs_symbol ON tabs (symbol)`,
	}

	for _, q := range queries {
		if _, err := db.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}

// --- Run operations ---

type Run struct {
	ID         int
	StartedAt  time.Time
	FinishedAt *time.Time
	Pages      int
}

// BeginRun records the start of a render run.
func (db *DB) BeginRun() (*Run, error) {
	var r Run
	err := db.conn.QueryRow(
		`INSERT INTO runs (id) VALUES (nextval('seq_run_id')) RETURNING id, started_at`,
	).Scan(&r.ID, &r.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	return &r, nil
}

// FinishRun marks a run complete with the number of pages written.
func (db *DB) FinishRun(runID, pages int) error {
	_, err := db.conn.Exec(
		`UPDATE runs SET finished_at = CURRENT_TIMESTAMP, pages = ? WHERE id = ?`,
		pages, runID,
	)
	return err
}

// LatestRun returns the most recently started run, or nil if none exists.
func (db *DB) LatestRun() (*Run, error) {
	var r Run
	err := db.conn.QueryRow(
		`SELECT id, started_at, finished_at, pages FROM runs ORDER BY id DESC LIMIT 1`,
	).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Pages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// --- Tab operations ---

// TabRecord is one rendered tab of a run.
type TabRecord struct {
	ID          int
	RunID       int
	Page        string
	Block       int
	Label       string
	Symbol      string
	Heading     string
	Link        string
	Placeholder bool
	Reason      string
}

func (db *DB) InsertTab(rec *TabRecord) error {
	_, err := db.conn.Exec(
		`INSERT INTO tabs (id, run_id, page, block_index, label, symbol, heading, link, placeholder, reason)
		 VALUES (nextval('seq_tab_id'), ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Page, rec.Block, rec.Label, rec.Symbol,
		nullString(rec.Heading), nullString(rec.Link), rec.Placeholder, nullString(rec.Reason),
	)
	if err != nil {
		return fmt.Errorf("inserting tab: %w", err)
	}
	return nil
}

// Placeholders lists the placeholder tabs of a run in page order.
func (db *DB) Placeholders(runID int) ([]TabRecord, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_id, page, block_index, label, symbol, heading, link, placeholder, reason
		 FROM tabs WHERE run_id = ? AND placeholder
		 ORDER BY page, block_index, label`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TabRecord
	for rows.Next() {
		var (
			rec                   TabRecord
			heading, link, reason sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Page, &rec.Block, &rec.Label, &rec.Symbol,
			&heading, &link, &rec.Placeholder, &reason); err != nil {
			return nil, err
		}
		rec.Heading, rec.Link, rec.Reason = heading.String, link.String, reason.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LabelCount is the number of tabs, and of placeholders among them, for one
// source label.
type LabelCount struct {
	Label        string
	Tabs         int
	Placeholders int
}

// Summary counts a run's tabs per label.
func (db *DB) Summary(runID int) ([]LabelCount, error) {
	rows, err := db.conn.Query(
		`SELECT label, COUNT(*), COUNT(*) FILTER (WHERE placeholder)
		 FROM tabs WHERE run_id = ?
		 GROUP BY label ORDER BY label`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabelCount
	for rows.Next() {
		var c LabelCount
		if err := rows.Scan(&c.Label, &c.Tabs, &c.Placeholders); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
