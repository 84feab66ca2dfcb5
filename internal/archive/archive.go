// Package archive packages converted PDFs into a ZIP file.
//
// All entries live under a single top-level directory. Entry names that
// collide get a numbered suffix so no PDF overwrites another.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
)

// DefaultDir is the top-level directory inside the archive.
const DefaultDir = "converted-pdfs"

// DefaultLevel is the deflate compression level.
const DefaultLevel = 6

// Sentinel errors.
var (
	ErrInvalidLevel = errors.New("invalid compression level")
	ErrClosed       = errors.New("archive already finalized")
)

// Builder accumulates entries in memory. It is not safe for concurrent use.
type Builder struct {
	dir     string
	level   int
	buf     bytes.Buffer
	zw      *zip.Writer
	used    map[string]bool
	entries []string
	closed  bool
	now     func() time.Time
}

// New creates a Builder writing entries under dir with the given deflate
// level (0 stores entries uncompressed, 1-9 deflate).
func New(dir string, level int) (*Builder, error) {
	if level < 0 || level > 9 {
		return nil, fmt.Errorf("%w: %d (must be 0-9)", ErrInvalidLevel, level)
	}
	dir = strings.Trim(path.Clean("/"+strings.ReplaceAll(dir, "\\", "/")), "/")
	if dir == "" {
		dir = DefaultDir
	}

	b := &Builder{
		dir:   dir,
		level: level,
		used:  make(map[string]bool),
		now:   time.Now,
	}
	b.zw = zip.NewWriter(&b.buf)
	b.zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	if _, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     dir + "/",
		Method:   zip.Store,
		Modified: b.now(),
	}); err != nil {
		return nil, fmt.Errorf("creating directory entry: %w", err)
	}
	return b, nil
}

// Add writes one PDF under the archive directory and returns the entry name
// relative to that directory, which differs from name when name was already
// taken.
func (b *Builder) Add(name string, data []byte) (string, error) {
	if b.closed {
		return "", ErrClosed
	}

	entry := b.unique(name)
	method := zip.Deflate
	if b.level == 0 {
		method = zip.Store
	}

	w, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     b.dir + "/" + entry,
		Method:   method,
		Modified: b.now(),
	})
	if err != nil {
		return "", fmt.Errorf("creating entry %s: %w", entry, err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("writing entry %s: %w", entry, err)
	}

	b.entries = append(b.entries, entry)
	return entry, nil
}

// Entries returns the entry names added so far, in order.
func (b *Builder) Entries() []string {
	return append([]string(nil), b.entries...)
}

// Bytes finalizes the archive and returns its serialized form. Further
// calls return the same bytes; Add fails after Bytes.
func (b *Builder) Bytes() ([]byte, error) {
	if !b.closed {
		b.closed = true
		if err := b.zw.Close(); err != nil {
			return nil, fmt.Errorf("finalizing archive: %w", err)
		}
	}
	return b.buf.Bytes(), nil
}

// unique returns name, or name with " (n)" before the extension when name
// is already used. Comparison ignores case so archives extract cleanly on
// case-insensitive file systems.
func (b *Builder) unique(name string) string {
	candidate := name
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; b.used[strings.ToLower(candidate)]; n++ {
		candidate = stem + " (" + strconv.Itoa(n) + ")" + ext
	}
	b.used[strings.ToLower(candidate)] = true
	return candidate
}

// OutputName derives the PDF entry name for an uploaded file: directory
// components are dropped and a trailing .doc or .docx extension, in any
// case, becomes .pdf. Names without a Word extension get .pdf appended.
func OutputName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "document"
	}

	lower := strings.ToLower(base)
	for _, ext := range []string{".docx", ".doc"} {
		if strings.HasSuffix(lower, ext) && len(base) > len(ext) {
			return base[:len(base)-len(ext)] + ".pdf"
		}
	}
	return base + ".pdf"
}
