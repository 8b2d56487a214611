// Package tabular splits delimited text with a header row into rows of
// named columns.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a header plus data rows. Rows may be shorter than the header;
// missing trailing cells read as absent.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// New builds a table from a header and rows.
// The first occurrence of a repeated column name wins.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t
}

// Parse reads delimited text. The first non-blank line is the header.
// Empty input yields an empty table, not an error.
func Parse(data []byte, delimiter rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return New(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return New(header, rows), nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has reports whether the header contains the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Get returns the cell of row i (0-based) in the named column. The boolean
// is false when the column does not exist or the row is too short.
func (t *Table) Get(i int, column string) (string, bool) {
	col, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i]) {
		return "", false
	}
	return t.Rows[i][col], true
}
