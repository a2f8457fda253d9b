// Package odt reads and writes OpenDocument Text files for repair. The
// body of content.xml is parsed into mutable structures; styles,
// settings, and metadata pass through the rewrite untouched.
package odt

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

// Document is an ODT file opened for repair.
type Document struct {
	content *contentXML
	parts   []archivePart // every zip entry except content.xml and mimetype

	blocks []model.Block
}

// archivePart is a zip entry carried through the rewrite verbatim.
type archivePart struct {
	name string
	data []byte
}

// odtMimetype is the value of the mimetype entry.
const odtMimetype = "application/vnd.oasis.opendocument.text"

// Open reads and parses an ODT file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(bytes.NewReader(data), int64(len(data)))
}

// Parse reads an ODT archive from r.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	d := &Document{}
	var contentData []byte

	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		switch f.Name {
		case "content.xml":
			contentData = data
		case "mimetype":
			// regenerated on save
		default:
			d.parts = append(d.parts, archivePart{name: f.Name, data: data})
		}
	}

	if contentData == nil {
		return nil, fmt.Errorf("not a valid ODT file: missing content.xml")
	}

	content := &contentXML{}
	if err := xml.Unmarshal(contentData, content); err != nil {
		return nil, fmt.Errorf("parsing content.xml: %w", err)
	}
	d.content = content
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
// newlines. List items and table cells are included in document order.
func (d *Document) Text() string {
	var sb strings.Builder
	writePara := func(p *paragraphXML) {
		sb.WriteString(paragraphText(p))
		sb.WriteString("\n")
	}
	for _, el := range d.content.Body {
		switch {
		case el.Paragraph != nil:
			writePara(el.Paragraph)
		case el.List != nil:
			for _, item := range el.List.Items {
				for _, p := range item.Paragraphs {
					writePara(p)
				}
			}
		case el.Table != nil:
			for _, row := range el.Table.Rows {
				for _, cell := range row.Cells {
					for _, p := range cell.Paragraphs {
						writePara(p)
					}
				}
			}
		}
	}
	return sb.String()
}

// paragraphText renders a paragraph's segments as plain text.
func paragraphText(p *paragraphXML) string {
	var sb strings.Builder
	for _, seg := range p.Segs {
		sb.WriteString(segmentText(seg))
	}
	return sb.String()
}

// segmentText renders one segment as plain text.
func segmentText(seg *segmentXML) string {
	switch seg.Kind {
	case segSpace:
		return strings.Repeat(" ", seg.Count)
	case segTab:
		return "\t"
	case segBreak:
		return "\n"
	default:
		return seg.Text
	}
}
