package main

import (
	"errors"
	"os"

	word2pdf "github.com/alnah/go-word2pdf"
	"github.com/alnah/go-word2pdf/internal/client"
	"github.com/alnah/go-word2pdf/internal/config"
	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// Exit codes for the word2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // All files converted
	ExitGeneral   = 1 // Some files failed, or an unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // File not found, permission denied, unreachable server
	ExitConverter = 4 // LibreOffice missing or timed out
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Native converter errors (exit 4)
	if errors.Is(err, word2pdf.ErrConverterNotFound) ||
		errors.Is(err, word2pdf.ErrConverterTimeout) {
		return ExitConverter
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteArchive) ||
		errors.Is(err, ErrServerUnreachable) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, fileutil.ErrInvalidSize) ||
		errors.Is(err, client.ErrInvalidURL) ||
		errors.Is(err, client.ErrTooManyFiles) ||
		errors.Is(err, client.ErrFileTooLarge) ||
		errors.Is(err, client.ErrTotalTooLarge) ||
		errors.Is(err, word2pdf.ErrInvalidEngine) ||
		errors.Is(err, word2pdf.ErrInvalidFontSize) ||
		errors.Is(err, word2pdf.ErrInvalidFont) ||
		errors.Is(err, word2pdf.ErrInvalidMargin) ||
		errors.Is(err, word2pdf.ErrInvalidCompression) {
		return ExitUsage
	}

	return ExitGeneral
}
