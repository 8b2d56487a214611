package export

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/matsen/litmerge/internal/dedup"
)

const recordsSchema = `
	CREATE TABLE records (
		run_id TEXT NOT NULL,
		partition TEXT NOT NULL,
		item INTEGER NOT NULL,
		doi TEXT,
		title TEXT,
		year TEXT,
		document_type TEXT,
		language TEXT,
		cited_by INTEGER,
		authors TEXT,
		duplicate_reason TEXT
	);

	CREATE INDEX idx_records_doi ON records(doi) WHERE doi IS NOT NULL;
`

// WriteSQLite writes rs to a new SQLite file with a single records table.
// An existing file at path is replaced.
func WriteSQLite(path, runID string, rs *dedup.ResultSet) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(recordsSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO records (
			run_id, partition, item, doi, title, year,
			document_type, language, cited_by, authors, duplicate_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, sheet := range Sheets(rs.Family) {
		for _, r := range sheet.Records(rs) {
			var reason *string
			if r.DuplicateReason != "" {
				s := string(r.DuplicateReason)
				reason = &s
			}
			if _, err := stmt.Exec(
				runID, sheet.Partition(), r.SequenceIndex,
				r.Identifier, r.Title, r.Year,
				r.DocumentType, r.Language, r.CitedBy, r.Authors, reason,
			); err != nil {
				return fmt.Errorf("inserting record %d: %w", r.SequenceIndex, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
