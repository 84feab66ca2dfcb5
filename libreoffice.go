package word2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-word2pdf/internal/fileutil"
	"github.com/alnah/go-word2pdf/internal/process"
)

// libreOfficeCandidates are searched in PATH when no binary is configured.
var libreOfficeCandidates = []string{"soffice", "libreoffice"}

// maxOutput caps the converter output quoted in error messages.
const maxOutput = 512

// libreOffice converts documents by running LibreOffice headless, one
// process per document, each with a private profile directory.
type libreOffice struct {
	binary  string
	timeout time.Duration
}

// newLibreOffice resolves the binary and returns a ready converter.
func newLibreOffice(binary string, timeout time.Duration) (*libreOffice, error) {
	path, err := LookupLibreOffice(binary)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultConverterTimeout
	}
	return &libreOffice{binary: path, timeout: timeout}, nil
}

// LookupLibreOffice returns the absolute path of the LibreOffice binary.
// An empty binary searches PATH for soffice, then libreoffice.
func LookupLibreOffice(binary string) (string, error) {
	candidates := libreOfficeCandidates
	if binary != "" {
		candidates = []string{binary}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: searched %s", ErrConverterNotFound, strings.Join(candidates, ", "))
}

// ConvertNative writes data to a private directory, runs
// `--headless --convert-to pdf` on it and returns the produced PDF.
func (lo *libreOffice) ConvertNative(ctx context.Context, name string, data []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "word2pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	// A fixed input name keeps user-supplied names off the command line.
	input := filepath.Join(dir, "input"+fileutil.Ext(name))
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing input: %w", err)
	}
	outDir := filepath.Join(dir, "out")
	profile := filepath.Join(dir, "profile")

	ctx, cancel := context.WithTimeout(ctx, lo.timeout)
	defer cancel()

	// #nosec G204 -- binary comes from configuration, arguments are fixed paths
	cmd := exec.CommandContext(ctx, lo.binary,
		"-env:UserInstallation="+fileURL(profile),
		"--headless",
		"--norestore",
		"--nolockcheck",
		"--convert-to", "pdf",
		"--outdir", outDir,
		input,
	)
	cmd.Env = append(os.Environ(), "HOME="+dir)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	process.Isolate(cmd)

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrConverterTimeout, lo.timeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v%s", ErrConverterFailed, err, quoteOutput(output.String()))
	}

	pdf, err := os.ReadFile(filepath.Join(outDir, "input.pdf"))
	if err != nil || len(pdf) == 0 {
		return nil, fmt.Errorf("%w%s", ErrNoOutput, quoteOutput(output.String()))
	}
	return pdf, nil
}

// fileURL converts a local path to the file:// URL form LibreOffice expects.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// quoteOutput formats trimmed converter output for an error message.
func quoteOutput(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) > maxOutput {
		s = s[:maxOutput] + "..."
	}
	return ": " + s
}
