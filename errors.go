package word2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// ErrNoFiles is returned by ConvertBatch for an empty batch.
	ErrNoFiles = errors.New("no files provided")

	// Per-file conversion errors, reported through Outcome.Err.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrLegacyDocument    = errors.New("legacy .doc format is not supported by the text engine")
	ErrExtraction        = errors.New("text extraction failed")
	ErrRender            = errors.New("PDF rendering failed")
	ErrFileTooLarge      = errors.New("file too large")

	// Native converter errors.
	ErrConverterNotFound = errors.New("LibreOffice not found")
	ErrConverterTimeout  = errors.New("LibreOffice conversion timed out")
	ErrConverterFailed   = errors.New("LibreOffice conversion failed")
	ErrNoOutput          = errors.New("LibreOffice produced no output")

	// ErrArchive is a batch-level failure while building the ZIP archive.
	ErrArchive = errors.New("archive construction failed")

	// Option validation errors.
	ErrInvalidFontSize    = errors.New("invalid font size")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidFont        = errors.New("invalid font")
	ErrInvalidEngine      = errors.New("invalid engine")
	ErrInvalidCompression = errors.New("invalid compression level")
)
