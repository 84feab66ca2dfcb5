// Package fileutil provides file name, path and size helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrInvalidSize is returned by ParseSize for malformed or negative sizes.
var ErrInvalidSize = errors.New("invalid size")

// WordExtensions are the accepted document extensions, lower-case.
var WordExtensions = []string{".doc", ".docx"}

// Ext returns the lower-cased extension of a file name, including the dot.
// Both slash and backslash separate directories.
func Ext(name string) string {
	return strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/")))
}

// IsWordDocument reports whether name ends in .doc or .docx, ignoring case.
func IsWordDocument(name string) bool {
	ext := Ext(name)
	for _, want := range WordExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "server" -> false (name)
//   - "./word2pdf.yaml" -> true (relative path)
//   - "/etc/word2pdf/prod.yaml" -> true (absolute)
//   - "C:\config\prod.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an HTTP(S) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// HumanSize formats a byte count with binary units, e.g. "500 MiB".
func HumanSize(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// ParseSize parses a byte count such as "500MiB", "10 MB" or "1024".
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSize, s, err)
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidSize, s)
	}
	return int64(n), nil
}
