// Package docxtest builds minimal OOXML word-processing packages in memory
// for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`

const documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><w:body>`

const documentTail = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`

// Legacy is the signature of an OLE2 compound file followed by padding,
// enough for format detection.
var Legacy = append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 504)...)

// Build returns a .docx package whose body holds the given raw WordprocessingML.
func Build(body string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", packageRels},
		{"word/_rels/document.xml.rels", documentRels},
		{"word/document.xml", documentHead + body + documentTail},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			panic(fmt.Sprintf("docxtest: create %s: %v", p.name, err))
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			panic(fmt.Sprintf("docxtest: write %s: %v", p.name, err))
		}
	}
	if err := zw.Close(); err != nil {
		panic(fmt.Sprintf("docxtest: close: %v", err))
	}
	return buf.Bytes()
}

// Paragraphs returns a .docx package with one plain paragraph per text.
// An empty string produces an empty paragraph.
func Paragraphs(texts ...string) []byte {
	var b strings.Builder
	for _, t := range texts {
		b.WriteString(Paragraph(t))
	}
	return Build(b.String())
}

// Paragraph returns the markup of one paragraph with a single run.
func Paragraph(text string) string {
	if text == "" {
		return `<w:p/>`
	}
	return `<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` +
		html.EscapeString(text) + `</w:t></w:r></w:p>`
}
