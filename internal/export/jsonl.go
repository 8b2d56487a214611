package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"

	"github.com/matsen/litmerge/internal/dedup"
	"github.com/matsen/litmerge/internal/record"
)

// Line is one JSONL output object: a record tagged with its run and
// partition.
type Line struct {
	RunID     string `json:"run_id"`
	Partition string `json:"partition"`
	record.Record
}

// WriteJSONL writes every record of rs, partition by partition in sheet
// order, replacing existing content.
func WriteJSONL(path, runID string, rs *dedup.ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating JSONL file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, sheet := range Sheets(rs.Family) {
		for _, r := range sheet.Records(rs) {
			data, err := json.Marshal(Line{RunID: runID, Partition: sheet.Partition(), Record: r})
			if err != nil {
				return fmt.Errorf("encoding record %d: %w", r.SequenceIndex, err)
			}
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("writing record %d: %w", r.SequenceIndex, err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing newline: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing JSONL file: %w", err)
	}

	return f.Close()
}
