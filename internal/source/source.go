// Package source reads an input export file into UTF-8 text.
//
// Exports from the citation databases arrive with a UTF-8 BOM (Scopus),
// as UTF-16 with a BOM (some Web of Science downloads), or gzip or xz
// compressed when fetched in bulk. All of these are normalized here so the
// parsers only ever see UTF-8.
package source

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned when the decoded content is not valid UTF-8.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// File is decoded input content plus the digest of the bytes on disk.
type File struct {
	Content []byte
	// Digest is the hex BLAKE3-256 of the raw file, before decompression.
	Digest string
}

// Read opens path, decompresses it if needed and returns UTF-8 content.
// The file handle is closed before Read returns.
func Read(path string) ([]byte, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f.Content, nil
}

// Open is Read that also reports the digest of the raw file.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sum := blake3.Sum256(raw)

	data := raw
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		data, err = gunzip(raw)
	case bytes.HasPrefix(raw, xzMagic):
		data, err = unxz(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}

	content, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &File{Content: content, Digest: hex.EncodeToString(sum[:])}, nil
}

// Decode strips a byte order mark, converts UTF-16 to UTF-8 and checks that
// the result is valid UTF-8.
func Decode(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if !utf8.Valid(out) {
		return nil, ErrInvalidEncoding
	}
	return out, nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func unxz(data []byte) ([]byte, error) {
	xr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(xr)
}
