// Package extract pulls plain text out of Word documents.
//
// Only the OOXML format is read. Legacy binary .doc files are recognized by
// their signature and rejected with ErrLegacyFormat so callers can point the
// user at a native converter instead.
package extract

import (
	"bytes"
	"context"
	"errors"
)

// Sentinel errors returned by extractors.
var (
	ErrEmpty        = errors.New("document is empty")
	ErrUnrecognized = errors.New("not a Word document")
	ErrLegacyFormat = errors.New("legacy binary .doc format")
	ErrRichText     = errors.New("rich text format")
	ErrMalformed    = errors.New("malformed document")
)

// Extractor returns the plain text of a document. Paragraphs are separated
// by '\n'.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// Format identifies a document container by its leading bytes.
type Format int

// Known container formats.
const (
	FormatUnknown Format = iota
	FormatOOXML
	FormatOLE2
	FormatRTF
)

func (f Format) String() string {
	switch f {
	case FormatOOXML:
		return "ooxml"
	case FormatOLE2:
		return "ole2"
	case FormatRTF:
		return "rtf"
	default:
		return "unknown"
	}
}

var (
	zipMagic      = []byte("PK\x03\x04")
	zipEmptyMagic = []byte("PK\x05\x06")
	ole2Magic     = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	rtfMagic      = []byte(`{\rtf`)
)

// Detect sniffs the container format of data.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic), bytes.HasPrefix(data, zipEmptyMagic):
		return FormatOOXML
	case bytes.HasPrefix(data, ole2Magic):
		return FormatOLE2
	case bytes.HasPrefix(data, rtfMagic):
		return FormatRTF
	default:
		return FormatUnknown
	}
}
