package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/litmerge/internal/record"
)

// ExtractIdentifiers reads a plain list with one identifier per line.
// Blank lines are skipped; SequenceIndex counts the remaining lines.
// Lines that normalize to nothing (only periods) are treated as blank.
func ExtractIdentifiers(r io.Reader) ([]record.Record, error) {
	scanner := bufio.NewScanner(r)

	var recs []record.Record
	for scanner.Scan() {
		key := record.NormalizeKey(strings.TrimSpace(scanner.Text()))
		if key == "" {
			continue
		}
		recs = append(recs, record.Record{
			SequenceIndex: len(recs) + 1,
			Identifier:    &key,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}

	return recs, nil
}
