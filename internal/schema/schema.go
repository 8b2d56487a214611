// Package schema maps each supported export schema to the columns holding
// the canonical record fields.
package schema

import (
	"fmt"
	"strings"
)

// Family groups schemas by the shape of their records and output sheets.
type Family int

const (
	// FamilyTabular schemas carry full metadata and get a title pass.
	FamilyTabular Family = iota
	// FamilyIdentifierList is a plain list of identifiers, one per line.
	FamilyIdentifierList
)

// Schema tags accepted on the command line.
const (
	TagScopus     = "scopus"
	TagWoS        = "wos"
	TagPubMed     = "pubmed"
	TagPMC        = "pmc"
	TagDimensions = "dimensions"
	TagText       = "txt"
)

// Columns names the source header for each canonical field.
// An empty name means the schema has no such concept.
type Columns struct {
	Authors      string
	Title        string
	Year         string
	Identifier   string
	DocumentType string
	Language     string
	CitedBy      string
}

// Schema describes one supported export format.
type Schema struct {
	Tag         string
	Description string
	Family      Family
	Delimiter   rune
	Columns     Columns

	// ParseMedline is set when the input is MEDLINE text that must be
	// flattened into a table before extraction.
	ParseMedline bool
	// CitedByDefaultZero treats a missing citation count as zero.
	CitedByDefaultZero bool
}

// ConfigurationError reports an unsupported schema tag.
type ConfigurationError struct {
	Tag string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported schema %q (valid: %s)", e.Tag, strings.Join(Tags(), ", "))
}

// Synthetic column names of the table produced from MEDLINE records.
const (
	MedlineColPMID        = "PMID"
	MedlineColTitle       = "Title"
	MedlineColAuthors     = "Authors"
	MedlineColYear        = "Publication Year"
	MedlineColPMCID       = "PMCID"
	MedlineColDOI         = "DOI"
	MedlineColLanguage    = "Language"
	MedlineColDocType     = "Document Type"
	MedlineColJournalType = "Journal Type"
)

// schemas is in menu order.
var schemas = []Schema{
	{
		Tag:         TagScopus,
		Description: "Indicates that the file (.csv) was exported from Scopus",
		Family:      FamilyTabular,
		Delimiter:   ',',
		Columns: Columns{
			Authors:      "Authors",
			Title:        "Title",
			Year:         "Year",
			Identifier:   "DOI",
			DocumentType: "Document Type",
			Language:     "Language of Original Document",
			CitedBy:      "Cited by",
		},
		CitedByDefaultZero: true,
	},
	{
		Tag:         TagWoS,
		Description: "Indicates that the file (.csv) was exported from Web of Science",
		Family:      FamilyTabular,
		Delimiter:   '\t',
		Columns: Columns{
			Authors:      "AU",
			Title:        "TI",
			Year:         "PY",
			Identifier:   "DI",
			DocumentType: "DT",
			Language:     "LA",
			CitedBy:      "TC",
		},
	},
	{
		Tag:         TagPubMed,
		Description: "Indicates that the file (.csv) was exported from PubMed",
		Family:      FamilyTabular,
		Delimiter:   ',',
		Columns: Columns{
			Authors:    "Authors",
			Title:      "Title",
			Year:       "Publication Year",
			Identifier: "DOI",
		},
	},
	{
		Tag:         TagPMC,
		Description: "Indicates that the file (.txt) was exported from PubMed Central, necessarily in MEDLINE format",
		Family:      FamilyTabular,
		Delimiter:   ',',
		Columns: Columns{
			Authors:      MedlineColAuthors,
			Title:        MedlineColTitle,
			Year:         MedlineColYear,
			Identifier:   MedlineColDOI,
			DocumentType: MedlineColDocType,
			Language:     MedlineColLanguage,
		},
		ParseMedline: true,
	},
	{
		Tag:         TagDimensions,
		Description: "Indicates that the file (.csv) was exported from Dimensions",
		Family:      FamilyTabular,
		Delimiter:   ',',
		Columns: Columns{
			Authors:      "Authors",
			Title:        "Title",
			Year:         "PubYear",
			Identifier:   "DOI",
			DocumentType: "Publication Type",
			CitedBy:      "Times cited",
		},
	},
	{
		Tag:         TagText,
		Description: "Indicates that it is a text file (.txt)",
		Family:      FamilyIdentifierList,
	},
}

// Lookup returns the schema for a tag. Tags are case-insensitive.
func Lookup(tag string) (Schema, error) {
	want := strings.ToLower(strings.TrimSpace(tag))
	for _, s := range schemas {
		if s.Tag == want {
			return s, nil
		}
	}
	return Schema{}, &ConfigurationError{Tag: tag}
}

// All returns every supported schema in menu order.
func All() []Schema {
	out := make([]Schema, len(schemas))
	copy(out, schemas)
	return out
}

// Tags returns the supported schema tags in menu order.
func Tags() []string {
	tags := make([]string, len(schemas))
	for i, s := range schemas {
		tags[i] = s.Tag
	}
	return tags
}

// Help returns a one-line "tag: description | ..." summary for flag usage.
func Help() string {
	parts := make([]string, len(schemas))
	for i, s := range schemas {
		parts[i] = s.Tag + ": " + s.Description
	}
	return strings.Join(parts, " | ")
}
