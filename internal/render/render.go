// Package render serializes laid-out pages to PDF with pdfcpu.
//
// Pages are described in pdfcpu's JSON page-content format: each non-empty
// line becomes one or more text boxes on the line baseline with a core font.
// Core fonts need no embedding, which keeps output small and lets the
// layout engine use pdfcpu's own glyph metrics.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-word2pdf/internal/layout"
)

// DefaultFont is the core font used when none is configured.
const DefaultFont = "Helvetica"

// Sentinel errors.
var (
	ErrUnsupportedFont = errors.New("unsupported font")
	ErrNoPages         = errors.New("no pages to render")
)

var disableConfigDir sync.Once

// Options controls PDF serialization.
type Options struct {
	Font     string // core font name, e.g. Helvetica, Times-Roman, Courier
	FontSize int
	Paper    string // pdfcpu paper name, e.g. A4
}

// Renderer turns pages into PDF bytes. Create with New.
type Renderer struct{}

// New creates a Renderer. pdfcpu's on-disk configuration directory is
// disabled process-wide on first use so rendering never touches the user's
// home directory.
func New() *Renderer {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Renderer{}
}

// ValidateFont reports an error unless name is one of the PDF core fonts.
func ValidateFont(name string) error {
	if !font.IsCoreFont(name) {
		return fmt.Errorf("%w: %q (must be a PDF core font such as %s, Times-Roman or Courier)", ErrUnsupportedFont, name, DefaultFont)
	}
	return nil
}

// Metrics returns a width function backed by the core font's glyph widths.
// Text is measured in the single-byte encoding the core fonts are drawn
// with, so each Latin-1 rune counts as one glyph.
func Metrics(fontName string) layout.WidthFunc {
	return func(text string, size int) float64 {
		return font.TextWidth(model.DecodeUTF8ToByte(text), fontName, size)
	}
}

// Render serializes pages. Every page in the input produces one PDF page,
// including pages without lines.
func (r *Renderer) Render(pages []layout.Page, opts Options) ([]byte, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if opts.Font == "" {
		opts.Font = DefaultFont
	}
	if err := ValidateFont(opts.Font); err != nil {
		return nil, err
	}
	if opts.Paper == "" {
		opts.Paper = "A4"
	}

	desc, err := json.Marshal(describe(pages, opts))
	if err != nil {
		return nil, fmt.Errorf("encoding page description: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &out, nil); err != nil {
		return nil, fmt.Errorf("creating PDF: %w", err)
	}
	return out.Bytes(), nil
}

// document mirrors the subset of pdfcpu's JSON create schema in use.
type document struct {
	Paper  string          `json:"paper"`
	Origin string          `json:"origin"`
	Pages  map[string]page `json:"pages"`
}

type page struct {
	Content content `json:"content"`
}

type content struct {
	Text []textBox `json:"text"`
}

type textBox struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  fontSpec   `json:"font"`
}

type fontSpec struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func describe(pages []layout.Page, opts Options) document {
	doc := document{
		Paper:  opts.Paper,
		Origin: "LowerLeft",
		Pages:  make(map[string]page, len(pages)),
	}
	width := Metrics(opts.Font)
	for i, p := range pages {
		boxes := make([]textBox, 0, len(p.Lines))
		for _, line := range p.Lines {
			offset := 0
			for _, seg := range segments(line.Text) {
				boxes = append(boxes, textBox{
					Value: escapePercent(seg),
					Pos:   [2]float64{line.X + width(line.Text[:offset], opts.FontSize), line.Y},
					Font:  fontSpec{Name: opts.Font, Size: opts.FontSize},
				})
				offset += len(seg)
			}
		}
		doc.Pages[strconv.Itoa(i+1)] = page{Content: content{Text: boxes}}
	}
	return doc
}

// segments cuts a line wherever pdfcpu would read two adjacent bytes as
// markup: a backslash before 'n' is a line break, and a percent sign before
// p, P, t or v is a page number, page count, timestamp or version. Each
// piece is drawn as its own box so no pair survives inside one value.
func segments(text string) []string {
	var segs []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		c, next := text[i], text[i+1]
		if (c == '\\' && next == 'n') || (c == '%' && strings.IndexByte("pPtv", next) >= 0) {
			segs = append(segs, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}
	return segs
}

// escapePercent adds one '%' to every run of percent signs. pdfcpu's
// placeholder expansion emits one '%' less than each run holds.
func escapePercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
		if s[i] == '%' && (i+1 == len(s) || s[i+1] != '%') {
			b.WriteByte('%')
		}
	}
	return b.String()
}
