// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records per-document extraction outcomes in a SQLite
// database so later runs can report what the archive contains. The manifest
// is reporting-only: the resume decision is made from the page-1 output file
// on disk, never from this database.
package manifest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/archive-press/pkg/types"
)

const (
	manifestDir = ".archive-press"
	dbFile      = "manifest.db"
)

// Store manages the manifest SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the manifest database under
// outputDir/.archive-press/manifest.db, creating the schema if needed.
func NewStore(outputDir string) (*Store, error) {
	dir := filepath.Join(outputDir, manifestDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS extractions (
		stem        TEXT PRIMARY KEY,
		pdf_path    TEXT NOT NULL,
		status      TEXT NOT NULL,
		pages       INTEGER NOT NULL,
		size_bytes  INTEGER NOT NULL,
		dpi         INTEGER NOT NULL,
		backend     TEXT NOT NULL,
		error       TEXT,
		recorded_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Entry is one recorded extraction attempt.
type Entry struct {
	Stem       string                 `json:"stem" yaml:"stem"`
	PDFPath    string                 `json:"pdf_path" yaml:"pdf_path"`
	Status     types.ExtractionStatus `json:"status" yaml:"status"`
	Pages      int                    `json:"pages" yaml:"pages"`
	SizeBytes  int64                  `json:"size_bytes" yaml:"size_bytes"`
	DPI        int                    `json:"dpi" yaml:"dpi"`
	Backend    string                 `json:"backend" yaml:"backend"`
	Error      string                 `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt time.Time              `json:"recorded_at" yaml:"recorded_at"`
}

// Record stores the outcome of one document. Extracted and failed outcomes
// replace any previous row for the same stem; a skipped outcome only inserts
// when no row exists, so it never clobbers the page count from the run that
// actually did the work.
func (s *Store) Record(doc types.Document, out types.Outcome, cfg types.ExtractConfig) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if out.Status == types.ExtractionSkipped {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO extractions
			 (stem, pdf_path, status, pages, size_bytes, dpi, backend, error, recorded_at)
			 VALUES (?, ?, ?, 0, ?, ?, ?, '', ?)`,
			doc.Stem, doc.Path, out.Status, doc.Size, cfg.DPI, cfg.Backend, now,
		)
		if err != nil {
			return fmt.Errorf("recording skip for %s: %w", doc.Stem, err)
		}
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO extractions
		 (stem, pdf_path, status, pages, size_bytes, dpi, backend, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(stem) DO UPDATE SET
		 pdf_path=excluded.pdf_path, status=excluded.status, pages=excluded.pages,
		 size_bytes=excluded.size_bytes, dpi=excluded.dpi, backend=excluded.backend,
		 error=excluded.error, recorded_at=excluded.recorded_at`,
		doc.Stem, doc.Path, out.Status, out.Pages, doc.Size, cfg.DPI, cfg.Backend, out.Err, now,
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", doc.Stem, err)
	}
	return nil
}

// List returns all recorded entries ordered by stem.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stem, pdf_path, status, pages, size_bytes, dpi, backend, error, recorded_at
		 FROM extractions ORDER BY stem`)
	if err != nil {
		return nil, fmt.Errorf("querying manifest: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recorded string
		if err := rows.Scan(&e.Stem, &e.PDFPath, &e.Status, &e.Pages,
			&e.SizeBytes, &e.DPI, &e.Backend, &e.Error, &recorded); err != nil {
			return nil, fmt.Errorf("scanning manifest row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, recorded); err == nil {
			e.RecordedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportYAML writes all entries to w as a YAML document.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(map[string][]Entry{"extractions": entries})
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes all entries to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string][]Entry{"extractions": entries})
}
