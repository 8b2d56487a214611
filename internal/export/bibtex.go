package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/matsen/litmerge/internal/dedup"
	"github.com/matsen/litmerge/internal/record"
)

// ToBibTeX converts a record to a BibTeX entry keyed by its item number.
func ToBibTeX(r record.Record) string {
	entryType := determineEntryType(record.Value(r.DocumentType))
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{item%d,\n", entryType, r.SequenceIndex))

	if r.Authors != nil {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(*r.Authors)))
	}
	if r.Title != nil {
		b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(*r.Title)))
	}
	if r.Year != nil {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", *r.Year))
	}
	if r.Identifier != nil {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", *r.Identifier))
	}
	if r.Language != nil {
		b.WriteString(fmt.Sprintf("  language = {%s},\n", escapeLatex(*r.Language)))
	}

	b.WriteString("}\n")

	return b.String()
}

// WriteBibTeX writes the unique records of rs as BibTeX entries.
func WriteBibTeX(path string, rs *dedup.ResultSet) error {
	entries := make([]string, len(rs.Unique))
	for i, r := range rs.Unique {
		entries[i] = ToBibTeX(r)
	}
	if err := os.WriteFile(path, []byte(strings.Join(entries, "\n")), 0644); err != nil {
		return fmt.Errorf("writing BibTeX file: %w", err)
	}
	return nil
}

// determineEntryType maps a source document type to a BibTeX entry type.
func determineEntryType(docType string) string {
	t := strings.ToLower(docType)

	switch {
	case strings.Contains(t, "conference") ||
		strings.Contains(t, "proceeding"):
		return "inproceedings"
	case strings.Contains(t, "book chapter") ||
		strings.Contains(t, "chapter"):
		return "incollection"
	case t == "book" || t == "monograph":
		return "book"
	case strings.Contains(t, "preprint"):
		return "misc"
	}

	return "article"
}

// formatAuthors converts a "; "-separated author list into BibTeX's
// "A and B" form.
func formatAuthors(authors string) string {
	var formatted []string
	for _, a := range strings.Split(authors, ";") {
		if a = strings.TrimSpace(a); a != "" {
			formatted = append(formatted, escapeLatex(a))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// & must be first, before other escapes that might produce &
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
