// Package medline reconstructs records from MEDLINE-format exports
// (PubMed Central "Send to: File, MEDLINE") and flattens them into a table
// with the same shape as the CSV exports.
package medline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/litmerge/internal/schema"
	"github.com/matsen/litmerge/internal/tabular"
)

// maxLineCapacity bounds a single input line. Abstracts are wrapped by the
// exporter, so real lines stay far below this.
const maxLineCapacity = 1024 * 1024

// field is the multi-line field currently being accumulated, if any.
type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldAbstract
	fieldIdentifier
)

// Row is one finalized MEDLINE record.
type Row struct {
	PMID            string
	PMCID           string
	Title           string
	Abstract        string
	Authors         string
	Year            string
	DOI             string
	Language        string
	PublicationType string
	JournalType     string
}

// block accumulates the raw lines of one record until the next record
// starts or input ends.
type block struct {
	pmc             []string
	pmid            []string
	languages       []string
	journalType     []string
	publicationType []string
	date            []string
	title           []string
	abstract        []string
	source          []string
	authors         []string
}

// parser holds the state of a single pass over the input.
type parser struct {
	current *block // nil until the first record-start tag
	field   field
	rows    []Row
}

// Parse reads MEDLINE text and returns one row per record, in input order.
// Content that cannot be interpreted is ignored; only read errors fail.
func Parse(r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineCapacity)

	p := &parser{}
	for scanner.Scan() {
		p.feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MEDLINE input: %w", err)
	}
	p.flush()

	return p.rows, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) ([]Row, error) {
	return Parse(strings.NewReader(s))
}

func (p *parser) feed(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	// A record-start tag always opens a new block.
	if strings.HasPrefix(line, tagPMC) {
		p.flush()
		p.current = &block{pmc: []string{tagValue(line, tagPMC)}}
		p.field = fieldNone
		return
	}

	if p.current == nil {
		return
	}
	b := p.current

	if p.field != fieldNone {
		if !startsField(line) {
			b.appendTo(p.field, line)
			return
		}
		p.field = fieldNone
	}

	switch {
	case strings.HasPrefix(line, tagPMID):
		b.pmid = append(b.pmid, tagValue(line, tagPMID))
	case strings.HasPrefix(line, tagLanguage):
		b.languages = append(b.languages, tagValue(line, tagLanguage))
	case strings.HasPrefix(line, tagJournalType):
		b.journalType = append(b.journalType, tagValue(line, tagJournalType))
	case strings.HasPrefix(line, tagPublicationType):
		b.publicationType = append(b.publicationType, tagValue(line, tagPublicationType))
	case strings.HasPrefix(line, tagDate):
		b.date = append(b.date, tagValue(line, tagDate))
	case strings.HasPrefix(line, tagAuthor):
		b.authors = append(b.authors, tagValue(line, tagAuthor))
	case strings.HasPrefix(line, tagTitle):
		p.field = fieldTitle
		b.title = append(b.title, tagValue(line, tagTitle))
	case strings.HasPrefix(line, tagAbstract):
		p.field = fieldAbstract
		b.abstract = append(b.abstract, tagValue(line, tagAbstract))
	case strings.HasPrefix(line, tagSource):
		p.field = fieldIdentifier
		b.source = append(b.source, tagValue(line, tagSource))
	}
}

// flush finalizes the open block, if any.
func (p *parser) flush() {
	if p.current == nil {
		return
	}
	p.rows = append(p.rows, p.current.finalize())
	p.current = nil
	p.field = fieldNone
}

func (b *block) appendTo(f field, line string) {
	switch f {
	case fieldTitle:
		b.title = append(b.title, line)
	case fieldAbstract:
		b.abstract = append(b.abstract, line)
	case fieldIdentifier:
		b.source = append(b.source, line)
	}
}

func (b *block) finalize() Row {
	names := make([]string, len(b.languages))
	for i, code := range b.languages {
		names[i] = LanguageName(code)
	}

	year := strings.Join(b.date, " ")
	if r := []rune(year); len(r) > 4 {
		year = string(r[:4])
	}

	return Row{
		PMID:            strings.Join(b.pmid, " "),
		PMCID:           strings.Join(b.pmc, " "),
		Title:           strings.Join(b.title, " "),
		Abstract:        strings.Join(b.abstract, " "),
		Authors:         strings.Join(b.authors, "; "),
		Year:            year,
		DOI:             extractDOI(strings.Join(b.source, " ")),
		Language:        strings.Join(names, " "),
		PublicationType: PublicationType(strings.Join(b.publicationType, " ")),
		JournalType:     strings.Join(b.journalType, " "),
	}
}

// extractDOI returns the text following the first "doi:" marker (up to any
// later marker) with trailing periods removed, or "" without a marker.
func extractDOI(source string) string {
	parts := strings.Split(source, "doi:")
	if len(parts) < 2 {
		return ""
	}
	doi := strings.TrimSpace(parts[1])
	for strings.HasSuffix(doi, ".") {
		doi = strings.TrimSpace(strings.TrimSuffix(doi, "."))
	}
	return doi
}

// ToTable flattens rows into a table using the synthetic column names that
// the pmc schema maps from. The abstract is not carried over.
func ToTable(rows []Row) *tabular.Table {
	header := []string{
		schema.MedlineColPMID,
		schema.MedlineColTitle,
		schema.MedlineColAuthors,
		schema.MedlineColYear,
		schema.MedlineColPMCID,
		schema.MedlineColDOI,
		schema.MedlineColLanguage,
		schema.MedlineColDocType,
		schema.MedlineColJournalType,
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			r.PMID,
			r.Title,
			r.Authors,
			r.Year,
			r.PMCID,
			r.DOI,
			r.Language,
			r.PublicationType,
			r.JournalType,
		}
	}
	return tabular.New(header, cells)
}
