package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain utf-8", []byte("DOI\n10.1/a\n"), "DOI\n10.1/a\n"},
		{"utf-8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Authors,Title")...), "Authors,Title"},
		{"utf-16le with bom", []byte{0xFF, 0xFE, 'P', 0, 'T', 0}, "PT"},
		{"utf-16be with bom", []byte{0xFE, 0xFF, 0, 'P', 0, 'T'}, "PT"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode([]byte{'a', 0xff, 0xfe, 0xfd, 'b'})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Decode() error = %v, want ErrInvalidEncoding", err)
	}
}

func TestRead_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("10.1/a\n10.1/b\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "dois.txt.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != "10.1/a\n10.1/b\n" {
		t.Errorf("Read() = %q", got)
	}
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want os.ErrNotExist", err)
	}
}

func TestRead_XZ(t *testing.T) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write([]byte("PMC - PMC1\n")); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "pmc.txt.xz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != "PMC - PMC1\n" {
		t.Errorf("Read() = %q", got)
	}
}

func TestOpen_Digest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("10.1/a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("10.1/b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fa, err := Open(a)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	fa2, _ := Open(a)
	fb, _ := Open(b)

	if len(fa.Digest) != 64 {
		t.Errorf("Digest length = %d, want 64 hex chars", len(fa.Digest))
	}
	if fa.Digest != fa2.Digest {
		t.Error("Digest should be stable for the same content")
	}
	if fa.Digest == fb.Digest {
		t.Error("Digest should differ for different content")
	}
}

func TestRead_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gz")
	if err := os.WriteFile(path, []byte{0x1f, 0x8b, 0x00, 0x01}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read() should fail on a corrupt gzip stream")
	}
}
