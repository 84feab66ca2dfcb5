// Package layout wraps plain text into lines and places the lines onto
// fixed-size pages.
//
// Wrapping is greedy: words are appended to the current line until the next
// word would make it wider than the content width. A word wider than the
// content width is kept whole on its own line. Pagination places lines from
// the top margin downwards, one line height apart, and starts a new page
// when the next baseline would fall below the bottom margin.
//
// Coordinates are PDF user space: points, origin at the lower-left corner.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// LineSpacing is the line height expressed as a multiple of the font size.
const LineSpacing = 1.2

// Sentinel errors for option validation.
var (
	ErrInvalidFontSize = errors.New("invalid font size")
	ErrInvalidMargin   = errors.New("invalid margin")
)

// Geometry describes a page and its uniform margin, in points.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// A4 is a portrait ISO A4 page, rounded to whole points.
var A4 = Geometry{Width: 595, Height: 842, Margin: 50}

// ContentWidth returns the horizontal space between the margins.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// WidthFunc returns the rendered width of text, in points, at the given
// font size.
type WidthFunc func(text string, size int) float64

// Line is one placed line of text. An empty Text is a paragraph break.
type Line struct {
	Text string
	X    float64
	Y    float64 // baseline
}

// Page is an ordered top-to-bottom list of lines.
type Page struct {
	Lines []Line
}

// Options configures Layout.
type Options struct {
	Geometry Geometry
	FontSize int
	Width    WidthFunc
}

// Validate checks that the options describe a usable page. A nil Width is
// accepted and replaced by MonospaceWidth in Layout.
func (o Options) Validate() error {
	if o.FontSize <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidFontSize, o.FontSize)
	}
	g := o.Geometry
	if g.Margin < 0 {
		return fmt.Errorf("%w: %.1f (must not be negative)", ErrInvalidMargin, g.Margin)
	}
	if g.ContentWidth() <= 0 {
		return fmt.Errorf("%w: %.1f leaves no horizontal space on a %.0fpt wide page", ErrInvalidMargin, g.Margin, g.Width)
	}
	if g.Height-2*g.Margin < float64(o.FontSize) {
		return fmt.Errorf("%w: %.1f leaves no room for a %dpt line on a %.0fpt tall page", ErrInvalidMargin, g.Margin, o.FontSize, g.Height)
	}
	return nil
}

// LineHeight returns the vertical advance between consecutive baselines.
func LineHeight(size int) float64 {
	return float64(size) * LineSpacing
}

// MonospaceWidth approximates every character as 0.6 em wide.
func MonospaceWidth(text string, size int) float64 {
	return float64(len([]rune(text))) * float64(size) * 0.6
}

// Layout wraps text to the content width and paginates the result.
// Empty text yields a single page without lines.
func Layout(text string, opts Options) ([]Page, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	width := opts.Width
	if width == nil {
		width = MonospaceWidth
	}

	var lines []string
	if text != "" {
		for _, paragraph := range strings.Split(text, "\n") {
			lines = append(lines, Wrap(paragraph, width, opts.FontSize, opts.Geometry.ContentWidth())...)
		}
	}
	return Paginate(lines, opts.Geometry, opts.FontSize), nil
}

// Wrap greedily packs the words of one paragraph into lines no wider than
// maxWidth. A paragraph without words yields exactly one empty line.
func Wrap(paragraph string, width WidthFunc, size int, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && width(candidate, size) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// Paginate assigns each line a baseline, starting new pages as needed.
// The result always holds at least one page.
func Paginate(lines []string, geom Geometry, size int) []Page {
	top := geom.Height - geom.Margin - float64(size)
	step := LineHeight(size)

	pages := []Page{{}}
	row := 0
	for _, text := range lines {
		y := top - float64(row)*step
		if row > 0 && y < geom.Margin {
			pages = append(pages, Page{})
			row = 0
			y = top
		}
		last := &pages[len(pages)-1]
		last.Lines = append(last.Lines, Line{Text: text, X: geom.Margin, Y: y})
		row++
	}
	return pages
}

// LinesPerPage returns how many lines fit on one page.
func LinesPerPage(geom Geometry, size int) int {
	top := geom.Height - geom.Margin - float64(size)
	step := LineHeight(size)
	n := 1
	for top-float64(n)*step >= geom.Margin {
		n++
	}
	return n
}

// CountLines returns the number of non-empty lines across pages.
func CountLines(pages []Page) int {
	n := 0
	for _, p := range pages {
		for _, l := range p.Lines {
			if l.Text != "" {
				n++
			}
		}
	}
	return n
}
