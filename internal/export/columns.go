// Package export writes a partitioned result set to output files.
package export

import (
	"github.com/matsen/litmerge/internal/dedup"
	"github.com/matsen/litmerge/internal/record"
	"github.com/matsen/litmerge/internal/schema"
)

// Sheet is one output partition.
type Sheet int

const (
	SheetDetail Sheet = iota
	SheetWithoutIdentifier
	SheetDuplicates
)

// Name returns the workbook sheet name.
func (s Sheet) Name() string {
	switch s {
	case SheetDetail:
		return "Detail"
	case SheetWithoutIdentifier:
		return "Without DOI"
	case SheetDuplicates:
		return "Duplicates"
	}
	return ""
}

// Partition returns the machine-readable partition name used by the JSONL
// and SQLite sinks.
func (s Sheet) Partition() string {
	switch s {
	case SheetDetail:
		return "unique"
	case SheetWithoutIdentifier:
		return "missing_identifier"
	case SheetDuplicates:
		return "duplicate"
	}
	return ""
}

// Records returns the partition of rs shown on the sheet.
func (s Sheet) Records(rs *dedup.ResultSet) []record.Record {
	switch s {
	case SheetDetail:
		return rs.Unique
	case SheetWithoutIdentifier:
		return rs.MissingIdentifier
	case SheetDuplicates:
		return rs.Duplicates
	}
	return nil
}

// Sheets lists the sheets written for a schema family, in workbook order.
// Identifier lists have no missing-identifier sheet.
func Sheets(family schema.Family) []Sheet {
	if family == schema.FamilyIdentifierList {
		return []Sheet{SheetDetail, SheetDuplicates}
	}
	return []Sheet{SheetDetail, SheetWithoutIdentifier, SheetDuplicates}
}

// Column is an output column header with its display width.
type Column struct {
	Header string
	Width  float64
}

var (
	tabularColumns = []Column{
		{"Item", 7},
		{"Title", 40},
		{"Year", 8},
		{"DOI", 33},
		{"Document Type", 18},
		{"Language", 12},
		{"Cited By", 11},
		{"Author(s)", 36},
	}
	identifierColumns = []Column{
		{"Item", 7},
		{"DOI", 33},
	}
	duplicateTypeColumn = Column{"Duplicate Type", 19}
)

// Columns returns the columns of a sheet. The duplicates sheet has an extra
// trailing "Duplicate Type" column.
func Columns(family schema.Family, sheet Sheet) []Column {
	base := tabularColumns
	if family == schema.FamilyIdentifierList {
		base = identifierColumns
	}
	cols := make([]Column, len(base), len(base)+1)
	copy(cols, base)
	if sheet == SheetDuplicates {
		cols = append(cols, duplicateTypeColumn)
	}
	return cols
}

// Cells projects a record onto the columns of a sheet. Absent fields are
// empty strings; Item is the record's SequenceIndex.
func Cells(r record.Record, family schema.Family, sheet Sheet) []any {
	var cells []any
	if family == schema.FamilyIdentifierList {
		cells = []any{r.SequenceIndex, record.Value(r.Identifier)}
	} else {
		var citedBy any = ""
		if r.CitedBy != nil {
			citedBy = *r.CitedBy
		}
		cells = []any{
			r.SequenceIndex,
			record.Value(r.Title),
			record.Value(r.Year),
			record.Value(r.Identifier),
			record.Value(r.DocumentType),
			record.Value(r.Language),
			citedBy,
			record.Value(r.Authors),
		}
	}
	if sheet == SheetDuplicates {
		cells = append(cells, r.DuplicateReason.Label())
	}
	return cells
}
