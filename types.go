package word2pdf

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-word2pdf/internal/archive"
	"github.com/alnah/go-word2pdf/internal/render"
)

// Engine selects how documents are turned into PDF.
type Engine string

// Available engines.
const (
	EngineText        Engine = "text"
	EngineLibreOffice Engine = "libreoffice"
)

// ParseEngine resolves an engine name (case-insensitive).
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case EngineText:
		return EngineText, nil
	case EngineLibreOffice:
		return EngineLibreOffice, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, s, EngineText, EngineLibreOffice)
	}
}

// Conversion defaults.
const (
	DefaultFontSize    = 11
	DefaultMargin      = 50.0
	DefaultFont        = render.DefaultFont
	DefaultCompression = archive.DefaultLevel
	DefaultArchiveDir  = archive.DefaultDir
	DefaultMaxFileSize = 500 << 20

	// DefaultConverterTimeout bounds a single LibreOffice run.
	DefaultConverterTimeout = 2 * time.Minute
)

// Font size bounds in points.
const (
	MinFontSize = 4
	MaxFontSize = 72
)

// MaxMargin is the largest accepted page margin in points.
const MaxMargin = 200.0

// File is one uploaded document.
type File struct {
	Name string // original file name, reported in the error manifest
	Path string // relative path within a selected folder, may equal Name
	Size int64
	Open func() (io.ReadCloser, error)
}

// NewFile returns a File backed by data.
func NewFile(name string, data []byte) File {
	return File{
		Name: name,
		Path: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Result is the output of converting one document.
type Result struct {
	PDF   []byte
	Pages int
	Lines int // non-empty text lines; zero for the LibreOffice engine
}

// Outcome records how one file of a batch fared. Outcomes keep input order.
type Outcome struct {
	Name     string
	Output   string // archive entry name, empty on failure
	Pages    int
	Size     int64 // PDF size in bytes
	Err      error
	Duration time.Duration

	pdf []byte // held until the PDF is added to the archive
}

// OK reports whether the file was converted.
func (o Outcome) OK() bool { return o.Err == nil }

// Batch is the result of ConvertBatch.
type Batch struct {
	Outcomes []Outcome
	Archive  []byte
}

// Errors returns the error manifest: one "<name>: <message>" line per
// failed file, in input order. It returns nil when every file converted.
func (b *Batch) Errors() []string {
	var lines []string
	for _, o := range b.Outcomes {
		if !o.OK() {
			lines = append(lines, o.Name+": "+o.Err.Error())
		}
	}
	return lines
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Pages     int
}

// Summary returns outcome counts.
func (b *Batch) Summary() Summary {
	s := Summary{Total: len(b.Outcomes)}
	for _, o := range b.Outcomes {
		if o.OK() {
			s.Succeeded++
			s.Pages += o.Pages
		} else {
			s.Failed++
		}
	}
	return s
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine           Engine
	fontSize         int
	font             string
	margin           float64
	compression      int
	archiveDir       string
	maxFileSize      int64
	converterBinary  string
	converterTimeout time.Duration
}

func defaultConfig() converterConfig {
	return converterConfig{
		engine:           EngineText,
		fontSize:         DefaultFontSize,
		font:             DefaultFont,
		margin:           DefaultMargin,
		compression:      DefaultCompression,
		archiveDir:       DefaultArchiveDir,
		maxFileSize:      DefaultMaxFileSize,
		converterTimeout: DefaultConverterTimeout,
	}
}

// WithEngine selects the conversion engine.
func WithEngine(e Engine) Option {
	return func(c *Converter) { c.cfg.engine = e }
}

// WithFontSize sets the text engine font size in points.
func WithFontSize(size int) Option {
	return func(c *Converter) { c.cfg.fontSize = size }
}

// WithFont sets the text engine font. It must be a PDF core font.
func WithFont(name string) Option {
	return func(c *Converter) { c.cfg.font = name }
}

// WithMargin sets the page margin, in points, used on all four sides.
func WithMargin(points float64) Option {
	return func(c *Converter) { c.cfg.margin = points }
}

// WithCompression sets the archive deflate level (0 stores entries).
func WithCompression(level int) Option {
	return func(c *Converter) { c.cfg.compression = level }
}

// WithArchiveDir sets the top-level directory inside the archive.
func WithArchiveDir(dir string) Option {
	return func(c *Converter) { c.cfg.archiveDir = dir }
}

// WithMaxFileSize caps the bytes read from a single file. Zero disables
// the cap.
func WithMaxFileSize(n int64) Option {
	return func(c *Converter) { c.cfg.maxFileSize = n }
}

// WithLibreOffice sets the LibreOffice binary name or path. An empty value
// searches PATH for soffice and libreoffice.
func WithLibreOffice(binary string) Option {
	return func(c *Converter) { c.cfg.converterBinary = binary }
}

// WithConverterTimeout bounds each LibreOffice run.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithConverterTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("word2pdf: WithConverterTimeout duration must be positive")
	}
	return func(c *Converter) { c.cfg.converterTimeout = d }
}

// WithLogger sets the logger for per-file diagnostics. The default discards
// all records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
