package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var _ Extractor = (*Docx)(nil)

// markupCompat is the namespace of mc:AlternateContent. Its Fallback branch
// repeats the Choice content for older readers and is skipped.
const markupCompat = "http://schemas.openxmlformats.org/markup-compatibility/2006"

// Docx extracts the body text of OOXML word-processing documents.
//
// Runs are concatenated, paragraphs end with a newline, tabs and breaks are
// kept, table cells are separated by tabs and rows by newlines. Deleted
// revisions, field codes, headers and footers are ignored.
type Docx struct{}

// NewDocx creates a Docx extractor.
func NewDocx() *Docx { return &Docx{} }

// Extract implements Extractor.
func (d *Docx) Extract(ctx context.Context, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}

	switch Detect(data) {
	case FormatOOXML:
	case FormatOLE2:
		return "", ErrLegacyFormat
	case FormatRTF:
		return "", ErrRichText
	default:
		return "", ErrUnrecognized
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer func() { _ = doc.Close() }()

	text, err := parseBody(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return text, nil
}

// bodyState tracks the streaming decoder position inside document.xml.
type bodyState struct {
	out       []byte
	decoder   *xml.Decoder
	inText    bool
	cellDepth int
}

// parseBody converts the document.xml markup to plain text.
func parseBody(content string) (string, error) {
	s := &bodyState{decoder: xml.NewDecoder(strings.NewReader(content))}

	for {
		tok, err := s.decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := s.handleStart(t); err != nil {
				return "", err
			}
		case xml.EndElement:
			s.handleEnd(t)
		case xml.CharData:
			if s.inText {
				s.out = append(s.out, t...)
			}
		}
	}

	return strings.TrimRight(string(s.out), "\n"), nil
}

func (s *bodyState) handleStart(t xml.StartElement) error {
	if t.Name.Space == markupCompat && t.Name.Local == "Fallback" {
		return s.decoder.Skip()
	}

	switch t.Name.Local {
	case "t":
		s.inText = true
	case "tab":
		s.out = append(s.out, '\t')
	case "br", "cr":
		s.out = append(s.out, '\n')
	case "tc":
		s.cellDepth++
	case "delText", "instrText":
		return s.decoder.Skip()
	case "pPr", "rPr", "sectPr":
		// Properties hold no text; w:tabs inside pPr are tab stops, not tabs.
		return s.decoder.Skip()
	}
	return nil
}

func (s *bodyState) handleEnd(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		s.inText = false
	case "p":
		if s.cellDepth > 0 {
			s.out = append(s.trimRight(' '), ' ')
			return
		}
		s.out = append(s.out, '\n')
	case "tc":
		s.cellDepth--
		s.out = append(s.trimRight(' '), '\t')
	case "tr":
		s.out = append(s.trimRight('\t'), '\n')
	}
}

func (s *bodyState) trimRight(c byte) []byte {
	for len(s.out) > 0 && s.out[len(s.out)-1] == c {
		s.out = s.out[:len(s.out)-1]
	}
	return s.out
}
