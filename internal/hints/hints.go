// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConverterNotFound returns hints for a missing LibreOffice binary.
// Suggests a package in containers and the binary variable when unset.
func ForConverterNotFound() string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "install libreoffice-writer in the image")
	} else {
		hints = append(hints, "install LibreOffice")
	}

	if os.Getenv("WORD2PDF_LIBREOFFICE") == "" {
		hints = append(hints, "set WORD2PDF_LIBREOFFICE to the soffice path")
	}

	hints = append(hints, "or use --engine text")
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForLegacyDocument returns a hint for .doc files the text engine cannot read.
func ForLegacyDocument() string {
	return format("convert legacy .doc files with --engine libreoffice")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-word2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-word2pdf) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-word2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForServerUnreachable returns hints when the upload target cannot be reached.
func ForServerUnreachable(url string) string {
	return format("start a server with 'word2pdf serve' or check --server " + url)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
