// Package diagnostics implements the optional debug-artifact store:
// a per-run log of encoded frames and print jobs, disabled unless the
// caller opts in via internal/settings. Uses the same migrate-then-scan-rows
// SQLite idiom as the rest of the module, applied to a schema of its
// own; no persisted session state is kept here, only a debugging trail.
package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS frame_records (
		id            TEXT PRIMARY KEY,
		run_id        TEXT NOT NULL,
		idx           INTEGER NOT NULL,
		format        TEXT NOT NULL,
		quality       INTEGER NOT NULL,
		width         INTEGER NOT NULL,
		height        INTEGER NOT NULL,
		fullscreen    INTEGER NOT NULL,
		payload_bytes INTEGER NOT NULL,
		recorded_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS printjob_records (
		id           TEXT PRIMARY KEY,
		run_id       TEXT NOT NULL,
		printer_name TEXT NOT NULL,
		doc_name     TEXT NOT NULL,
		opened_at    TEXT NOT NULL,
		closed_at    TEXT
	)`,
}

// FrameRecord is one logged frame emission.
type FrameRecord struct {
	Idx          int32
	Format       string
	Quality      int
	Width        int
	Height       int
	Fullscreen   bool
	PayloadBytes int
	RecordedAt   time.Time
}

// Store is the debug-artifact log for one bridge process run.
type Store struct {
	db    *sql.DB
	runID uuid.UUID
}

// Open opens (or creates) a SQLite database at path, runs migrations,
// and tags every record written through it with a fresh run id.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, runID: uuid.New()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	for _, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("diagnostics: migration: %w", err)
		}
	}
	return nil
}

// RunID identifies this process run across every record it writes.
func (s *Store) RunID() uuid.UUID { return s.runID }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordFrame logs one encoded frame emission.
func (s *Store) RecordFrame(ctx context.Context, f FrameRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO frame_records (id, run_id, idx, format, quality, width, height, fullscreen, payload_bytes, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), s.runID.String(), f.Idx, f.Format, f.Quality, f.Width, f.Height,
		boolToInt(f.Fullscreen), f.PayloadBytes, f.RecordedAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00"))
	return err
}

// RecordPrintjobOpened logs the start of a print job.
func (s *Store) RecordPrintjobOpened(ctx context.Context, printerName, docName string, openedAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO printjob_records (id, run_id, printer_name, doc_name, opened_at) VALUES (?, ?, ?, ?, ?)`,
		id, s.runID.String(), printerName, docName, openedAt.UTC().Format(time.RFC3339Nano))
	return id, err
}

// RecordPrintjobClosed marks a logged print job as closed.
func (s *Store) RecordPrintjobClosed(ctx context.Context, id string, closedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE printjob_records SET closed_at = ? WHERE id = ?`,
		closedAt.UTC().Format(time.RFC3339Nano), id)
	return err
}

// ListFrames returns every frame record logged for this run, oldest
// first.
func (s *Store) ListFrames(ctx context.Context) ([]FrameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, format, quality, width, height, fullscreen, payload_bytes, recorded_at
		 FROM frame_records WHERE run_id = ? ORDER BY recorded_at ASC`, s.runID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FrameRecord
	for rows.Next() {
		var f FrameRecord
		var fullscreen int
		var recordedAt string
		if err := rows.Scan(&f.Idx, &f.Format, &f.Quality, &f.Width, &f.Height, &fullscreen, &f.PayloadBytes, &recordedAt); err != nil {
			return nil, err
		}
		f.Fullscreen = fullscreen != 0
		f.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)
		out = append(out, f)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
