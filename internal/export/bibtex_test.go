package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/litmerge/internal/record"
)

func TestToBibTeX_BasicArticle(t *testing.T) {
	r := record.Record{
		SequenceIndex: 4,
		Identifier:    record.StringPtr("10.1234/test"),
		Title:         record.StringPtr("Test Paper Title"),
		Year:          record.StringPtr("2026"),
		DocumentType:  record.StringPtr("Article"),
		Language:      record.StringPtr("English"),
		Authors:       record.StringPtr("Smith, John; Doe, Jane"),
	}

	got := ToBibTeX(r)

	// Check entry type and key
	if !strings.HasPrefix(got, "@article{item4,") {
		t.Errorf("ToBibTeX() should start with @article{item4, got:\n%s", got)
	}

	// Check author format
	if !strings.Contains(got, `author = {Smith, John and Doe, Jane}`) {
		t.Errorf("ToBibTeX() should contain properly formatted authors, got:\n%s", got)
	}

	if !strings.Contains(got, `title = {Test Paper Title}`) {
		t.Errorf("ToBibTeX() should contain title, got:\n%s", got)
	}
	if !strings.Contains(got, `year = {2026}`) {
		t.Errorf("ToBibTeX() should contain year, got:\n%s", got)
	}
	if !strings.Contains(got, `doi = {10.1234/test}`) {
		t.Errorf("ToBibTeX() should contain DOI, got:\n%s", got)
	}
	if !strings.Contains(got, `language = {English}`) {
		t.Errorf("ToBibTeX() should contain language, got:\n%s", got)
	}

	// Check closing brace
	if !strings.HasSuffix(strings.TrimSpace(got), "}") {
		t.Errorf("ToBibTeX() should end with }, got:\n%s", got)
	}
}

func TestToBibTeX_AbsentFieldsOmitted(t *testing.T) {
	got := ToBibTeX(record.Record{SequenceIndex: 1, Title: record.StringPtr("Only a title")})

	for _, field := range []string{"author", "year", "doi", "language"} {
		if strings.Contains(got, field+" = ") {
			t.Errorf("ToBibTeX() should omit %s, got:\n%s", field, got)
		}
	}
}

func TestDetermineEntryType(t *testing.T) {
	tests := []struct {
		docType string
		want    string
	}{
		{"Article", "article"},
		{"Review", "article"},
		{"", "article"},
		{"Conference Paper", "inproceedings"},
		{"Proceedings Paper", "inproceedings"},
		{"Book Chapter", "incollection"},
		{"Book", "book"},
		{"Preprint", "misc"},
	}

	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			if got := determineEntryType(tt.docType); got != tt.want {
				t.Errorf("determineEntryType(%q) = %q, want %q", tt.docType, got, tt.want)
			}
		})
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no special chars", "Hello World", "Hello World"},
		{"ampersand", "A & B", `A \& B`},
		{"percent", "100%", `100\%`},
		{"dollar", "$100", `\$100`},
		{"hash", "#1", `\#1`},
		{"underscore", "foo_bar", `foo\_bar`},
		{"braces", "{test}", `\{test\}`},
		{"tilde", "~", `\textasciitilde{}`},
		{"caret", "^", `\textasciicircum{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeLatex(tt.input); got != tt.want {
				t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smith J.", "Smith J."},
		{"Smith J.; Doe J.", "Smith J. and Doe J."},
		{"Smith J.;;  Doe J.; ", "Smith J. and Doe J."},
	}
	for _, tt := range tests {
		if got := formatAuthors(tt.in); got != tt.want {
			t.Errorf("formatAuthors(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteBibTeX_UniqueOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bib")
	if err := WriteBibTeX(path, sampleResultSet()); err != nil {
		t.Fatalf("WriteBibTeX() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if n := strings.Count(got, "@article{"); n != 2 {
		t.Errorf("got %d entries, want 2:\n%s", n, got)
	}
	if strings.Contains(got, "item3,") {
		t.Errorf("duplicate record should not be exported:\n%s", got)
	}
}
