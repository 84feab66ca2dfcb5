package archive

// Notes:
// - Archives are read back with archive/zip to check layout and content.

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		out[f.Name] = string(body)
	}
	return out
}

// ---------------------------------------------------------------------------
// TestBuilder - Archive layout
// ---------------------------------------------------------------------------

func TestBuilder_Layout(t *testing.T) {
	t.Parallel()

	b, err := New(DefaultDir, DefaultLevel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, e := range []struct{ name, body string }{
		{"a.pdf", "first"},
		{"b.pdf", "second"},
	} {
		if _, err := b.Add(e.name, []byte(e.body)); err != nil {
			t.Fatalf("Add(%s): %v", e.name, err)
		}
	}

	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	got := readArchive(t, data)
	want := map[string]string{
		"converted-pdfs/":      "",
		"converted-pdfs/a.pdf": "first",
		"converted-pdfs/b.pdf": "second",
	}
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for name, body := range want {
		if got[name] != body {
			t.Errorf("entry %q = %q, want %q", name, got[name], body)
		}
	}
}

func TestBuilder_EmptyArchiveHasDirectory(t *testing.T) {
	t.Parallel()

	b, err := New("out", 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got := readArchive(t, data)
	if _, ok := got["out/"]; !ok || len(got) != 1 {
		t.Errorf("entries = %v, want only out/", got)
	}
}

func TestBuilder_DuplicateNames(t *testing.T) {
	t.Parallel()

	b, err := New(DefaultDir, DefaultLevel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var names []string
	for _, n := range []string{"a.pdf", "a.pdf", "A.pdf", "b.pdf", "a (2).pdf"} {
		entry, err := b.Add(n, []byte(n))
		if err != nil {
			t.Fatalf("Add(%s): %v", n, err)
		}
		names = append(names, entry)
	}

	want := []string{"a.pdf", "a (2).pdf", "A (3).pdf", "b.pdf", "a (2) (2).pdf"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("entries = %q, want %q", names, want)
	}
	if strings.Join(b.Entries(), "|") != strings.Join(want, "|") {
		t.Errorf("Entries() = %q, want %q", b.Entries(), want)
	}
}

func TestBuilder_CompressionLevels(t *testing.T) {
	t.Parallel()

	payload := []byte(strings.Repeat("compressible ", 4096))

	sizes := make(map[int]int)
	for _, level := range []int{0, 1, 9} {
		b, err := New(DefaultDir, level)
		if err != nil {
			t.Fatalf("New(level %d): %v", level, err)
		}
		if _, err := b.Add("x.pdf", payload); err != nil {
			t.Fatalf("Add: %v", err)
		}
		data, err := b.Bytes()
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		if got := readArchive(t, data)["converted-pdfs/x.pdf"]; got != string(payload) {
			t.Errorf("level %d: content mismatch", level)
		}
		sizes[level] = len(data)
	}

	if sizes[0] <= len(payload) {
		t.Errorf("stored archive (%d bytes) smaller than payload (%d bytes)", sizes[0], len(payload))
	}
	if sizes[9] >= sizes[0] {
		t.Errorf("deflated archive (%d bytes) not smaller than stored (%d bytes)", sizes[9], sizes[0])
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	for _, level := range []int{-1, 10} {
		if _, err := New(DefaultDir, level); !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("New(level %d) error = %v, want %v", level, err, ErrInvalidLevel)
		}
	}

	b, err := New(DefaultDir, DefaultLevel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if _, err := b.Add("late.pdf", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Add after Bytes error = %v, want %v", err, ErrClosed)
	}
	second, err := b.Bytes()
	if err != nil || !bytes.Equal(first, second) {
		t.Errorf("second Bytes call = (%d bytes, %v), want identical result", len(second), err)
	}
}

func TestNew_DirectoryNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  string
		want string
	}{
		{"", DefaultDir},
		{"/", DefaultDir},
		{"pdfs/", "pdfs"},
		{"../escape", "escape"},
		{`win\dir`, "win/dir"},
	}

	for _, tt := range tests {
		b, err := New(tt.dir, 0)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.dir, err)
		}
		if b.dir != tt.want {
			t.Errorf("New(%q).dir = %q, want %q", tt.dir, b.dir, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestOutputName - Entry naming
// ---------------------------------------------------------------------------

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a.docx", "a.pdf"},
		{"b.doc", "b.pdf"},
		{"Report.DOCX", "Report.pdf"},
		{"Memo.Doc", "Memo.pdf"},
		{"v1.2.docx", "v1.2.pdf"},
		{"folder/sub/c.docx", "c.pdf"},
		{`folder\d.doc`, "d.pdf"},
		{"notes.txt", "notes.txt.pdf"},
		{"archive.docx.bak", "archive.docx.bak.pdf"},
		{".docx", ".docx.pdf"},
		{"", "document.pdf"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.in); got != tt.want {
			t.Errorf("OutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
