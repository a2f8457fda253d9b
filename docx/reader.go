// Package docx reads and writes Microsoft Word documents for repair.
// It exposes a parsed document through the model interfaces so the
// normalization pipeline can fix text, direction, and table ordering,
// then saves the result as a valid DOCX archive.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dlvinn/tashih/model"
)

// Document is a DOCX file opened for repair. It holds the parsed body of
// word/document.xml plus the remaining archive parts, which are written
// back unchanged on save.
type Document struct {
	doc   *documentXML
	parts []archivePart // every zip entry except word/document.xml

	blocks []model.Block
}

// archivePart is a zip entry carried through the rewrite verbatim.
type archivePart struct {
	name string
	data []byte
}

// Open reads and parses a DOCX file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(bytes.NewReader(data), int64(len(data)))
}

// Parse reads a DOCX archive from r.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	d := &Document{}
	var docData []byte

	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		if f.Name == "word/document.xml" {
			docData = data
			continue
		}
		d.parts = append(d.parts, archivePart{name: f.Name, data: data})
	}

	if docData == nil {
		return nil, fmt.Errorf("not a valid DOCX file: missing word/document.xml")
	}

	doc := &documentXML{}
	if err := xml.Unmarshal(docData, doc); err != nil {
		return nil, fmt.Errorf("parsing document.xml: %w", err)
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("parsing document.xml: missing body")
	}
	d.doc = doc
	d.buildAdapters()

	return d, nil
}

// readZipFile reads the complete contents of a zip entry.
func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Text returns the plain text of the document, paragraphs separated by
// newlines. Table cell text is included in row order.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, el := range d.doc.Body.Elements {
		switch {
		case el.Paragraph != nil:
			sb.WriteString(paragraphText(el.Paragraph))
			sb.WriteString("\n")
		case el.Table != nil:
			for _, row := range el.Table.Rows {
				for _, cell := range row.Cells {
					for _, cc := range cell.Content {
						if cc.Paragraph != nil {
							sb.WriteString(paragraphText(cc.Paragraph))
							sb.WriteString("\n")
						}
					}
				}
			}
		}
	}
	return sb.String()
}

// paragraphText concatenates the text of every run in the paragraph,
// hyperlink runs included.
func paragraphText(p *paragraphXML) string {
	var sb strings.Builder
	for _, c := range p.Content {
		switch {
		case c.Run != nil:
			sb.WriteString(runText(c.Run))
		case c.Hyperlink != nil:
			for _, r := range c.Hyperlink.Runs {
				sb.WriteString(runText(r))
			}
		}
	}
	return sb.String()
}

// runText renders a run's segments as plain text.
func runText(r *runXML) string {
	var sb strings.Builder
	for _, seg := range r.Segs {
		switch seg.Kind {
		case segText:
			sb.WriteString(seg.Text)
		case segTab:
			sb.WriteString("\t")
		case segBreak:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
