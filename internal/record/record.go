// Package record defines the canonical, schema-independent bibliographic record.
package record

import (
	"fmt"
	"strings"
)

// Record is one bibliographic entry after extraction from a source export.
// Optional fields are nil when the source did not provide a value.
type Record struct {
	// Identity
	SequenceIndex int     `json:"item"` // 1-based position in the input
	Identifier    *string `json:"doi"`  // Normalized DOI (primary deduplication key)

	// Metadata
	Title        *string `json:"title"`
	Year         *string `json:"year"`
	DocumentType *string `json:"document_type"`
	Language     *string `json:"language"`
	CitedBy      *int    `json:"cited_by"`
	Authors      *string `json:"authors"`

	// Set only on records in the duplicates partition
	DuplicateReason DuplicateReason `json:"duplicate_reason,omitempty"`
}

// DuplicateReason records which deduplication pass rejected a record.
type DuplicateReason string

const (
	ReasonNone         DuplicateReason = ""
	ReasonByIdentifier DuplicateReason = "by_identifier"
	ReasonByTitle      DuplicateReason = "by_title"
)

// Label returns the display label used in the output sheets.
func (r DuplicateReason) Label() string {
	switch r {
	case ReasonByIdentifier:
		return "By DOI"
	case ReasonByTitle:
		return "By Title"
	}
	return ""
}

// Warning is a non-fatal field-level anomaly found while extracting a record.
// The affected field is recorded as absent and processing continues.
type Warning struct {
	Row     int    `json:"row"` // 0 when the warning applies to the whole file
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Row == 0 {
		return w.Field + ": " + w.Message
	}
	return fmt.Sprintf("row %d, %s: %s", w.Row, w.Field, w.Message)
}

// StringPtr returns a pointer to the trimmed value, or nil if it is empty.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional string, returning "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
