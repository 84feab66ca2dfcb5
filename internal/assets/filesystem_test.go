package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeAsset creates dir/sub/name with content.
func writeAsset(t *testing.T, dir, sub, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, sub, name), []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	fileInDir := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(fileInDir, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid directory", t.TempDir(), false},
		{"empty path", "", true},
		{"nonexistent directory", "/nonexistent/path/abc123xyz", true},
		{"file instead of directory", fileInDir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBasePath) {
					t.Errorf("error = %v, want ErrInvalidBasePath", err)
				}
				return
			}
			if err != nil || loader == nil {
				t.Fatalf("NewFilesystemLoader() = %v, %v", loader, err)
			}
		})
	}
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "pages", "index.html", "<p>custom</p>")
	writeAsset(t, dir, "styles", "default.css", "body{}")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	if got, err := loader.LoadPage("index"); err != nil || got != "<p>custom</p>" {
		t.Errorf("LoadPage() = %q, %v", got, err)
	}
	if got, err := loader.LoadStyle("default"); err != nil || got != "body{}" {
		t.Errorf("LoadStyle() = %q, %v", got, err)
	}
	if _, err := loader.LoadPage("other"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("missing page error = %v, want ErrPageNotFound", err)
	}
	if _, err := loader.LoadStyle("other"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("missing style error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadPage("../index"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("traversal error = %v, want ErrInvalidAssetName", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	outside := t.TempDir()
	writeAsset(t, outside, ".", "secret.html", "secret")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pages"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.html"), filepath.Join(dir, "pages", "index.html")); err != nil {
		t.Fatalf("setup: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadPage("index"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("error = %v, want ErrPathTraversal", err)
	}
}
