// Package pipeline runs one input file through parsing, extraction and
// deduplication.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/matsen/litmerge/internal/dedup"
	"github.com/matsen/litmerge/internal/export"
	"github.com/matsen/litmerge/internal/importer"
	"github.com/matsen/litmerge/internal/medline"
	"github.com/matsen/litmerge/internal/record"
	"github.com/matsen/litmerge/internal/schema"
	"github.com/matsen/litmerge/internal/source"
	"github.com/matsen/litmerge/internal/tabular"
)

// InputReadError reports an input that could not be opened, decoded or
// parsed. Nothing is written when a run fails with it.
type InputReadError struct {
	Path string
	Err  error
}

func (e *InputReadError) Error() string {
	return fmt.Sprintf("reading input %s: %v", e.Path, e.Err)
}

func (e *InputReadError) Unwrap() error {
	return e.Err
}

// RunConfig is the resolved configuration of one run.
type RunConfig struct {
	Schema    schema.Schema
	InputPath string
	OutputDir string

	WriteJSONL  bool
	WriteSQLite bool
	WriteBibTeX bool

	// Logger receives progress and warnings. A nil Logger discards them.
	Logger logrus.FieldLogger
}

// Result is a completed run.
type Result struct {
	RunID string
	// InputDigest is the BLAKE3 digest of the input file as read.
	InputDigest string
	Started     time.Time
	Elapsed     time.Duration
	Records     *dedup.ResultSet
	Outputs     Outputs
}

// Outputs holds the paths of the files written by a run. Optional sinks
// that were not requested are empty.
type Outputs struct {
	Workbook string `json:"workbook"`
	JSONL    string `json:"jsonl,omitempty"`
	SQLite   string `json:"sqlite,omitempty"`
	BibTeX   string `json:"bibtex,omitempty"`
}

// OutputPaths returns where a run with cfg writes its files.
func OutputPaths(cfg RunConfig) Outputs {
	base := filepath.Join(cfg.OutputDir, "input_"+cfg.Schema.Tag)
	out := Outputs{Workbook: base + ".xlsx"}
	if cfg.WriteJSONL {
		out.JSONL = base + ".jsonl"
	}
	if cfg.WriteSQLite {
		out.SQLite = base + ".db"
	}
	if cfg.WriteBibTeX {
		out.BibTeX = base + ".bib"
	}
	return out
}

// Run reads cfg.InputPath, partitions its records and writes the
// requested sinks. The context is checked between stages; a run that
// fails before the sinks stage writes nothing.
func Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}
	started := time.Now()

	in, err := source.Open(cfg.InputPath)
	if err != nil {
		return nil, &InputReadError{Path: cfg.InputPath, Err: err}
	}
	log.WithField("blake3", in.Digest).Debug("read input")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs, warnings, err := extract(cfg.Schema, in.Content)
	if err != nil {
		return nil, &InputReadError{Path: cfg.InputPath, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, w := range warnings {
		fields := logrus.Fields{"field": w.Field}
		if w.Row > 0 {
			fields["row"] = w.Row
		}
		log.WithFields(fields).Warn(w.Message)
	}

	rs := dedup.Run(cfg.Schema.Family, recs)
	rs.Warnings = warnings

	log.WithFields(logrus.Fields{
		"records":    rs.Total(),
		"unique":     len(rs.Unique),
		"missing":    len(rs.MissingIdentifier),
		"duplicates": len(rs.Duplicates),
	}).Debug("partitioned records")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       uuid.NewString(),
		InputDigest: in.Digest,
		Started:     started,
		Records:     rs,
		Outputs:     OutputPaths(cfg),
	}
	if err := writeOutputs(res); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(started)

	return res, nil
}

func writeOutputs(res *Result) error {
	if err := export.WriteWorkbook(res.Outputs.Workbook, res.Records); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	if res.Outputs.JSONL != "" {
		if err := export.WriteJSONL(res.Outputs.JSONL, res.RunID, res.Records); err != nil {
			return fmt.Errorf("writing JSONL: %w", err)
		}
	}
	if res.Outputs.SQLite != "" {
		if err := export.WriteSQLite(res.Outputs.SQLite, res.RunID, res.Records); err != nil {
			return fmt.Errorf("writing SQLite: %w", err)
		}
	}
	if res.Outputs.BibTeX != "" {
		if err := export.WriteBibTeX(res.Outputs.BibTeX, res.Records); err != nil {
			return fmt.Errorf("writing BibTeX: %w", err)
		}
	}
	return nil
}

// extract turns decoded file content into records according to the schema.
func extract(s schema.Schema, data []byte) ([]record.Record, []record.Warning, error) {
	if s.Family == schema.FamilyIdentifierList {
		recs, err := importer.ExtractIdentifiers(bytes.NewReader(data))
		return recs, nil, err
	}

	var tbl *tabular.Table
	if s.ParseMedline {
		rows, err := medline.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		tbl = medline.ToTable(rows)
	} else {
		var err error
		tbl, err = tabular.Parse(data, s.Delimiter)
		if err != nil {
			return nil, nil, err
		}
	}

	return importer.ExtractTabular(s, tbl)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
