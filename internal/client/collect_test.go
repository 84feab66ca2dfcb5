package client

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	folder := filepath.Join(dir, "reports")
	writeFile(t, filepath.Join(folder, "b.docx"), "bb")
	writeFile(t, filepath.Join(folder, "a.DOC"), "a")
	writeFile(t, filepath.Join(folder, "notes.txt"), "skip")
	writeFile(t, filepath.Join(folder, "sub", "c.docx"), "ccc")
	loose := filepath.Join(dir, "loose.txt")
	writeFile(t, loose, "explicit")

	files, err := Collect([]string{folder, loose})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := "reports/a.DOC,reports/b.docx,reports/sub/c.docx,loose.txt"
	if strings.Join(paths, ",") != want {
		t.Errorf("paths = %s, want %s", strings.Join(paths, ","), want)
	}

	if files[2].Name != "c.docx" || files[2].Size != 3 {
		t.Errorf("files[2] = %+v", files[2])
	}
	rc, err := files[1].Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, _ := io.ReadAll(rc)
	if string(data) != "bb" {
		t.Errorf("content = %q", data)
	}
}

func TestCollect_Missing(t *testing.T) {
	t.Parallel()

	if _, err := Collect([]string{filepath.Join(t.TempDir(), "nope.docx")}); err == nil {
		t.Error("Collect() error = nil, want missing file error")
	}
}
