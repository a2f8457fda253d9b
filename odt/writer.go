package odt

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// contentOpenTag declares the namespace prefixes the emitted markup and
// any passed-through raw fragments rely on.
const contentOpenTag = `<office:document-content` +
	` xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"` +
	` xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"` +
	` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"` +
	` xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"` +
	` xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"` +
	` xmlns:xlink="http://www.w3.org/1999/xlink"` +
	` xmlns:svg="urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"` +
	` xmlns:draw="urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"` +
	` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
	` office:version="1.2">`

// rtlStyleBase is the name of the injected RTL automatic style. Styled
// paragraphs get a derivative carrying their original style as parent.
const rtlStyleBase = "ArabicRTL"

// Save writes the document to filename as an ODT archive.
func (d *Document) Save(filename string) error {
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := d.Write(out); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// Write writes the document archive to w. The mimetype entry goes
// first and uncompressed, as the ODF packaging rules require.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := mw.Write([]byte(odtMimetype)); err != nil {
		return err
	}

	cw, err := zw.Create("content.xml")
	if err != nil {
		return err
	}
	if _, err := cw.Write(d.marshalContent()); err != nil {
		return err
	}

	for _, part := range d.parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := fw.Write(part.data); err != nil {
			return err
		}
	}

	return zw.Close()
}

// rtlStyles maps an original paragraph style name to the injected RTL
// style derived from it.
type rtlStyles map[string]string

// styleFor returns the injected style name for a flagged paragraph,
// registering it on first use.
func (s rtlStyles) styleFor(parent string) string {
	if name, ok := s[parent]; ok {
		return name
	}
	name := rtlStyleBase
	if parent != "" {
		name = rtlStyleBase + "_" + strings.ReplaceAll(parent, " ", "_")
	}
	s[parent] = name
	return name
}

// marshalContent serializes content.xml, assigning flagged paragraphs to
// injected RTL automatic styles. encoding/xml cannot emit
// namespace-prefixed elements, so the markup is built directly.
func (d *Document) marshalContent() []byte {
	styles := rtlStyles{}

	var body xmlBuilder
	body.raw("<office:body><office:text>")
	for _, el := range d.content.Body {
		switch {
		case el.Paragraph != nil:
			writeParagraph(&body, el.Paragraph, styles)
		case el.List != nil:
			writeList(&body, el.List, styles)
		case el.Table != nil:
			writeTable(&body, el.Table, styles)
		}
	}
	body.raw("</office:text></office:body>")

	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(contentOpenTag)
	if d.content.FontFaceDecls != nil {
		b.raw("<office:font-face-decls>")
		b.rawBytes(d.content.FontFaceDecls)
		b.raw("</office:font-face-decls>")
	}
	b.raw("<office:automatic-styles>")
	if d.content.AutoStyles != nil {
		b.rawBytes(d.content.AutoStyles)
	}
	writeRTLStyles(&b, styles)
	b.raw("</office:automatic-styles>")
	b.raw(body.String())
	b.raw("</office:document-content>")
	return []byte(b.String())
}

// writeRTLStyles emits the injected automatic styles in stable order.
func writeRTLStyles(b *xmlBuilder, styles rtlStyles) {
	parents := make([]string, 0, len(styles))
	for parent := range styles {
		parents = append(parents, parent)
	}
	sort.Strings(parents)

	for _, parent := range parents {
		b.raw("<style:style")
		b.attr("style:name", styles[parent])
		b.attr("style:family", "paragraph")
		if parent != "" {
			b.attr("style:parent-style-name", parent)
		}
		b.raw(">")
		b.raw(`<style:paragraph-properties style:writing-mode="rl-tb" fo:text-align="end"/>`)
		b.raw("</style:style>")
	}
}

// xmlBuilder accumulates markup with escaped text helpers.
type xmlBuilder struct {
	strings.Builder
}

func (b *xmlBuilder) raw(s string) {
	b.WriteString(s)
}

func (b *xmlBuilder) rawBytes(s []byte) {
	b.Write(s)
}

func (b *xmlBuilder) text(s string) {
	xml.EscapeText(b, []byte(s))
}

func (b *xmlBuilder) attr(name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}

func writeParagraph(b *xmlBuilder, p *paragraphXML, styles rtlStyles) {
	tag := "text:p"
	if p.Heading {
		tag = "text:h"
	}
	b.raw("<")
	b.raw(tag)
	if p.Heading && p.OutlineLevel != "" {
		b.attr("text:outline-level", p.OutlineLevel)
	}

	styleName := p.StyleName
	if p.rtl || p.alignRight {
		styleName = styles.styleFor(p.StyleName)
	}
	if styleName != "" {
		b.attr("text:style-name", styleName)
	}
	b.raw(">")

	for _, seg := range p.Segs {
		switch seg.Kind {
		case segText:
			b.text(seg.Text)
		case segSpan:
			b.raw("<text:span")
			if seg.StyleName != "" {
				b.attr("text:style-name", seg.StyleName)
			}
			b.raw(">")
			b.text(seg.Text)
			b.raw("</text:span>")
		case segSpace:
			b.raw("<text:s")
			if seg.Count > 1 {
				b.attr("text:c", strconv.Itoa(seg.Count))
			}
			b.raw("/>")
		case segTab:
			b.raw("<text:tab/>")
		case segBreak:
			b.raw("<text:line-break/>")
		case segLink:
			b.raw("<text:a")
			b.attr("xlink:type", "simple")
			if seg.Href != "" {
				b.attr("xlink:href", seg.Href)
			}
			b.raw(">")
			b.text(seg.Text)
			b.raw("</text:a>")
		}
	}

	b.raw("</")
	b.raw(tag)
	b.raw(">")
}

func writeList(b *xmlBuilder, l *listXML, styles rtlStyles) {
	b.raw("<text:list")
	if l.StyleName != "" {
		b.attr("text:style-name", l.StyleName)
	}
	b.raw(">")
	for _, item := range l.Items {
		b.raw("<text:list-item>")
		for _, p := range item.Paragraphs {
			writeParagraph(b, p, styles)
		}
		b.raw("</text:list-item>")
	}
	b.raw("</text:list>")
}

func writeTable(b *xmlBuilder, tbl *tableXML, styles rtlStyles) {
	b.raw("<table:table")
	if tbl.Name != "" {
		b.attr("table:name", tbl.Name)
	}
	if tbl.StyleName != "" {
		b.attr("table:style-name", tbl.StyleName)
	}
	b.raw(">")

	for _, col := range tbl.Columns {
		b.raw("<table:table-column")
		if col.StyleName != "" {
			b.attr("table:style-name", col.StyleName)
		}
		if col.Repeated != "" {
			b.attr("table:number-columns-repeated", col.Repeated)
		}
		b.raw("/>")
	}

	for _, row := range tbl.Rows {
		b.raw("<table:table-row")
		if row.StyleName != "" {
			b.attr("table:style-name", row.StyleName)
		}
		b.raw(">")
		for _, cell := range row.Cells {
			b.raw("<table:table-cell")
			if cell.StyleName != "" {
				b.attr("table:style-name", cell.StyleName)
			}
			if cell.ValueType != "" {
				b.attr("office:value-type", cell.ValueType)
			}
			b.raw(">")
			for _, p := range cell.Paragraphs {
				writeParagraph(b, p, styles)
			}
			b.raw("</table:table-cell>")
		}
		b.raw("</table:table-row>")
	}
	b.raw("</table:table>")
}
