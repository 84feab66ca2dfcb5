package word2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alnah/go-word2pdf/internal/archive"
	"github.com/alnah/go-word2pdf/internal/extract"
	"github.com/alnah/go-word2pdf/internal/fileutil"
	"github.com/alnah/go-word2pdf/internal/layout"
	"github.com/alnah/go-word2pdf/internal/render"
	"github.com/alnah/go-word2pdf/internal/sanitize"
)

// Compile-time interface implementation checks.
var (
	_ extract.Extractor = (*extract.Docx)(nil)
	_ pdfRenderer       = (*render.Renderer)(nil)
	_ nativeConverter   = (*libreOffice)(nil)
)

// pdfRenderer serializes laid-out pages.
type pdfRenderer interface {
	Render(pages []layout.Page, opts render.Options) ([]byte, error)
}

// nativeConverter turns document bytes directly into PDF bytes.
type nativeConverter interface {
	ConvertNative(ctx context.Context, name string, data []byte) ([]byte, error)
}

// Converter runs the per-file conversion pipeline and the batch orchestrator.
// Create with NewConverter. A Converter holds no per-request state and is
// safe for concurrent use.
type Converter struct {
	cfg       converterConfig
	extractor extract.Extractor
	renderer  pdfRenderer
	native    nativeConverter
	logger    *slog.Logger
}

// NewConverter creates a Converter. Options are validated here; the
// LibreOffice engine additionally requires the binary to be found.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    defaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	if c.extractor == nil {
		c.extractor = extract.NewDocx()
	}
	if c.renderer == nil {
		c.renderer = render.New()
	}
	if c.cfg.engine == EngineLibreOffice && c.native == nil {
		lo, err := newLibreOffice(c.cfg.converterBinary, c.cfg.converterTimeout)
		if err != nil {
			return nil, err
		}
		c.native = lo
	}

	return c, nil
}

// Engine returns the configured engine.
func (c *Converter) Engine() Engine { return c.cfg.engine }

// validate checks option values. Called once by NewConverter.
func (cfg converterConfig) validate() error {
	if _, err := ParseEngine(string(cfg.engine)); err != nil {
		return err
	}
	if cfg.fontSize < MinFontSize || cfg.fontSize > MaxFontSize {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidFontSize, cfg.fontSize, MinFontSize, MaxFontSize)
	}
	if cfg.margin < 0 || cfg.margin > MaxMargin {
		return fmt.Errorf("%w: %.1f (must be 0-%.0f)", ErrInvalidMargin, cfg.margin, MaxMargin)
	}
	if err := render.ValidateFont(cfg.font); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	if cfg.compression < 0 || cfg.compression > 9 {
		return fmt.Errorf("%w: %d (must be 0-9)", ErrInvalidCompression, cfg.compression)
	}
	if err := cfg.layoutOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMargin, err)
	}
	return nil
}

func (cfg converterConfig) layoutOptions() layout.Options {
	geom := layout.A4
	geom.Margin = cfg.margin
	return layout.Options{
		Geometry: geom,
		FontSize: cfg.fontSize,
		Width:    render.Metrics(cfg.font),
	}
}

// Convert runs the pipeline for one document. The name selects the format
// by extension; data holds the document bytes.
// Recovers from internal panics so one malformed document cannot crash a
// batch.
func (c *Converter) Convert(ctx context.Context, name string, data []byte) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if !fileutil.IsWordDocument(name) {
		return nil, fmt.Errorf("%w: %q (expected .doc or .docx)", ErrUnsupportedFormat, fileutil.Ext(name))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.cfg.engine == EngineLibreOffice {
		return c.convertNative(ctx, name, data)
	}
	return c.convertText(ctx, name, data)
}

// convertText extracts, sanitizes, lays out and renders the document text.
func (c *Converter) convertText(ctx context.Context, name string, data []byte) (*Result, error) {
	text, err := c.extractor.Extract(ctx, name, data)
	if err != nil {
		if errors.Is(err, extract.ErrLegacyFormat) {
			return nil, ErrLegacyDocument
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	pages, err := layout.Layout(sanitize.Text(text), c.cfg.layoutOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: laying out text: %v", ErrRender, err)
	}

	pdf, err := c.renderer.Render(pages, render.Options{
		Font:     c.cfg.font,
		FontSize: c.cfg.fontSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Result{PDF: pdf, Pages: len(pages), Lines: layout.CountLines(pages)}, nil
}

// convertNative delegates the whole conversion to LibreOffice.
func (c *Converter) convertNative(ctx context.Context, name string, data []byte) (*Result, error) {
	pdf, err := c.native.ConvertNative(ctx, name, data)
	if err != nil {
		return nil, err
	}

	pages, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		// A PDF pdfcpu cannot parse is still delivered; only the count is lost.
		c.logger.Debug("counting pages", "file", name, "error", err)
		pages = 0
	}
	return &Result{PDF: pdf, Pages: pages}, nil
}

// convertFile reads one File and converts it, returning its Outcome. It
// never fails the batch; every error lands in Outcome.Err.
func (c *Converter) convertFile(ctx context.Context, f File) Outcome {
	start := time.Now()
	out := Outcome{Name: f.Name}

	data, err := c.readFile(f)
	if err == nil {
		var res *Result
		res, err = c.Convert(ctx, f.Name, data)
		if err == nil {
			out.Output = archive.OutputName(f.Name)
			out.Pages = res.Pages
			out.Size = int64(len(res.PDF))
			out.pdf = res.PDF
		}
	}

	out.Err = err
	out.Duration = time.Since(start)
	return out
}
