package assets

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/alnah/go-word2pdf/internal/fileutil"
)

// PageData is the input of the upload page template.
type PageData struct {
	Title        string
	Engine       string
	Version      string
	MaxFiles     int
	MaxFileSize  int64
	MaxTotalSize int64
}

// Page is a parsed upload page with its stylesheet.
type Page struct {
	tmpl  *template.Template
	style template.CSS
}

var funcs = template.FuncMap{
	"humanSize": fileutil.HumanSize,
}

// LoadIndex loads and parses the index page and the default style from l.
func LoadIndex(l Loader) (*Page, error) {
	src, err := l.LoadPage(IndexPage)
	if err != nil {
		return nil, err
	}
	css, err := l.LoadStyle(DefaultStyle)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(IndexPage).Funcs(funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	// Stylesheets come from the embedded copy or the operator's directory.
	return &Page{tmpl: tmpl, style: template.CSS(css)}, nil // #nosec G203 -- trusted asset
}

// Render executes the page. Output is buffered so a failing template never
// leaves a half-written response.
func (p *Page) Render(w io.Writer, data PageData) error {
	view := struct {
		PageData
		Style template.CSS
	}{data, p.style}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, view); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
