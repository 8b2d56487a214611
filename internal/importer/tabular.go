// Package importer converts parsed source exports into canonical records.
package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matsen/litmerge/internal/record"
	"github.com/matsen/litmerge/internal/schema"
	"github.com/matsen/litmerge/internal/tabular"
)

// ErrSchemaMismatch is returned when a non-empty file lacks the identifier
// column of the declared schema.
var ErrSchemaMismatch = errors.New("input does not match schema")

// ExtractTabular builds one record per data row, in row order.
// SequenceIndex is the 1-based data row position. Anomalies in optional
// fields are reported as warnings and the field is left absent.
func ExtractTabular(s schema.Schema, t *tabular.Table) ([]record.Record, []record.Warning, error) {
	if len(t.Header) == 0 {
		return nil, nil, nil
	}
	if !t.Has(s.Columns.Identifier) {
		return nil, nil, fmt.Errorf("%w: no %q column for %s", ErrSchemaMismatch, s.Columns.Identifier, s.Tag)
	}

	var warnings []record.Warning
	for _, col := range optionalColumns(s.Columns) {
		if !t.Has(col) {
			warnings = append(warnings, record.Warning{
				Field:   col,
				Message: "column not found, values recorded as absent",
			})
		}
	}

	recs := make([]record.Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rec, w := extractRow(s, t, i)
		recs = append(recs, rec)
		warnings = append(warnings, w...)
	}

	return recs, warnings, nil
}

func extractRow(s schema.Schema, t *tabular.Table, i int) (record.Record, []record.Warning) {
	get := func(col string) *string {
		if col == "" {
			return nil
		}
		v, ok := t.Get(i, col)
		if !ok {
			return nil
		}
		return record.StringPtr(v)
	}

	rec := record.Record{
		SequenceIndex: i + 1,
		Title:         get(s.Columns.Title),
		Year:          get(s.Columns.Year),
		DocumentType:  get(s.Columns.DocumentType),
		Language:      get(s.Columns.Language),
		Authors:       get(s.Columns.Authors),
	}
	if id := get(s.Columns.Identifier); id != nil {
		rec.Identifier = record.StringPtr(record.NormalizeKey(*id))
	}

	var warnings []record.Warning
	raw := get(s.Columns.CitedBy)
	switch {
	case raw == nil && s.CitedByDefaultZero:
		zero := 0
		rec.CitedBy = &zero
	case raw != nil:
		n, err := parseCount(*raw)
		if err != nil {
			warnings = append(warnings, record.Warning{
				Row:     rec.SequenceIndex,
				Field:   s.Columns.CitedBy,
				Message: err.Error(),
			})
			break
		}
		rec.CitedBy = &n
	}

	return rec, warnings
}

// parseCount accepts integer counts as the exporters write them: plain
// ("12"), with thousands separators ("1,234") or as a whole float ("12.0").
func parseCount(s string) (int, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if n, err := strconv.Atoi(clean); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %q", s)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return int(f), nil
}

// optionalColumns lists the schema's non-identifier columns in a fixed order.
func optionalColumns(c schema.Columns) []string {
	var cols []string
	for _, col := range []string{c.Title, c.Year, c.DocumentType, c.Language, c.CitedBy, c.Authors} {
		if col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}
