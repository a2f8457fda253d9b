package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// xmlHeader is the declaration Word writes on every part.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// documentOpenTag declares the namespace prefixes the emitted markup and
// any passed-through raw fragments rely on.
const documentOpenTag = `<w:document` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
	` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
	` xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml"` +
	` mc:Ignorable="w14">`

// Save writes the document to filename as a DOCX archive. The body is
// regenerated from the parsed structures; every other archive part is
// copied through byte for byte.
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

// Write writes the document archive to w.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	fw, err := zw.Create("word/document.xml")
	if err != nil {
		return err
	}
	if _, err := fw.Write(d.marshalDocument()); err != nil {
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

// marshalDocument serializes the body back to word/document.xml markup.
// encoding/xml cannot emit namespace-prefixed elements, so the markup is
// built directly.
func (d *Document) marshalDocument() []byte {
	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(documentOpenTag)
	b.raw("<w:body>")
	for _, el := range d.doc.Body.Elements {
		switch {
		case el.Paragraph != nil:
			writeParagraph(&b, el.Paragraph)
		case el.Table != nil:
			writeTable(&b, el.Table)
		}
	}
	if d.doc.Body.SectPr != nil {
		b.raw("<w:sectPr>")
		b.rawBytes(d.doc.Body.SectPr)
		b.raw("</w:sectPr>")
	}
	b.raw("</w:body>")
	b.raw("</w:document>")
	return []byte(b.String())
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

// text writes s with XML special characters escaped.
func (b *xmlBuilder) text(s string) {
	xml.EscapeText(b, []byte(s))
}

// attr writes a name="value" attribute with the value escaped.
func (b *xmlBuilder) attr(name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}

func writeParagraph(b *xmlBuilder, p *paragraphXML) {
	b.raw("<w:p>")
	writeParagraphProps(b, &p.Props)
	for _, c := range p.Content {
		switch {
		case c.Run != nil:
			writeRun(b, c.Run)
		case c.Hyperlink != nil:
			writeHyperlink(b, c.Hyperlink)
		case c.BookmarkStart != nil:
			b.raw("<w:bookmarkStart")
			b.attr("w:id", c.BookmarkStart.ID)
			b.attr("w:name", c.BookmarkStart.Name)
			b.raw("/>")
		case c.BookmarkEnd != nil:
			b.raw("<w:bookmarkEnd")
			b.attr("w:id", c.BookmarkEnd.ID)
			b.raw("/>")
		}
	}
	b.raw("</w:p>")
}

// writeParagraphProps emits <w:pPr> with children in schema order.
func writeParagraphProps(b *xmlBuilder, props *paragraphPropsXML) {
	if props.Style == nil && props.NumPr == nil && props.Bidi == nil &&
		props.Spacing == nil && props.Indent == nil && props.Jc == nil &&
		props.OutlineLvl == nil {
		return
	}

	b.raw("<w:pPr>")
	if props.Style != nil {
		writeValElement(b, "w:pStyle", props.Style.Val)
	}
	if props.NumPr != nil {
		b.raw("<w:numPr>")
		if props.NumPr.ILvl != nil {
			writeValElement(b, "w:ilvl", props.NumPr.ILvl.Val)
		}
		if props.NumPr.NumID != nil {
			writeValElement(b, "w:numId", props.NumPr.NumID.Val)
		}
		b.raw("</w:numPr>")
	}
	writeToggle(b, "w:bidi", props.Bidi)
	if props.Spacing != nil {
		b.raw("<w:spacing")
		if props.Spacing.Before != "" {
			b.attr("w:before", props.Spacing.Before)
		}
		if props.Spacing.After != "" {
			b.attr("w:after", props.Spacing.After)
		}
		if props.Spacing.Line != "" {
			b.attr("w:line", props.Spacing.Line)
		}
		b.raw("/>")
	}
	if props.Indent != nil {
		b.raw("<w:ind")
		if props.Indent.Left != "" {
			b.attr("w:left", props.Indent.Left)
		}
		if props.Indent.Right != "" {
			b.attr("w:right", props.Indent.Right)
		}
		if props.Indent.FirstLine != "" {
			b.attr("w:firstLine", props.Indent.FirstLine)
		}
		if props.Indent.Hanging != "" {
			b.attr("w:hanging", props.Indent.Hanging)
		}
		b.raw("/>")
	}
	if props.Jc != nil {
		writeValElement(b, "w:jc", props.Jc.Val)
	}
	if props.OutlineLvl != nil {
		writeValElement(b, "w:outlineLvl", props.OutlineLvl.Val)
	}
	b.raw("</w:pPr>")
}

func writeValElement(b *xmlBuilder, name, val string) {
	b.raw("<")
	b.raw(name)
	b.attr("w:val", val)
	b.raw("/>")
}

// writeToggle emits an on/off element, keeping an explicit w:val when the
// source carried one.
func writeToggle(b *xmlBuilder, name string, t *toggleXML) {
	if t == nil {
		return
	}
	b.raw("<")
	b.raw(name)
	if t.Val != "" {
		b.attr("w:val", t.Val)
	}
	b.raw("/>")
}

func writeRun(b *xmlBuilder, r *runXML) {
	b.raw("<w:r>")
	writeRunProps(b, r.Props)
	for _, seg := range r.Segs {
		switch seg.Kind {
		case segText:
			b.raw("<w:t")
			if seg.PreserveSpace || seg.Text != strings.TrimSpace(seg.Text) {
				b.attr("xml:space", "preserve")
			}
			b.raw(">")
			b.text(seg.Text)
			b.raw("</w:t>")
		case segTab:
			b.raw("<w:tab/>")
		case segBreak:
			b.raw("<w:br")
			if seg.BreakType != "" {
				b.attr("w:type", seg.BreakType)
			}
			b.raw("/>")
		case segDrawing:
			b.raw("<w:drawing>")
			b.rawBytes(seg.Raw)
			b.raw("</w:drawing>")
		case segSym:
			b.raw("<w:sym")
			if seg.SymFont != "" {
				b.attr("w:font", seg.SymFont)
			}
			if seg.SymChar != "" {
				b.attr("w:char", seg.SymChar)
			}
			b.raw("/>")
		}
	}
	b.raw("</w:r>")
}

// writeRunProps emits <w:rPr> with children in schema order.
func writeRunProps(b *xmlBuilder, props *runPropsXML) {
	if props == nil {
		return
	}
	b.raw("<w:rPr>")
	if props.Fonts != nil {
		b.raw("<w:rFonts")
		if props.Fonts.ASCII != "" {
			b.attr("w:ascii", props.Fonts.ASCII)
		}
		if props.Fonts.HAnsi != "" {
			b.attr("w:hAnsi", props.Fonts.HAnsi)
		}
		if props.Fonts.CS != "" {
			b.attr("w:cs", props.Fonts.CS)
		}
		if props.Fonts.EastAsia != "" {
			b.attr("w:eastAsia", props.Fonts.EastAsia)
		}
		b.raw("/>")
	}
	writeToggle(b, "w:b", props.Bold)
	writeToggle(b, "w:i", props.Italic)
	writeToggle(b, "w:strike", props.Strike)
	if props.Color != nil {
		writeValElement(b, "w:color", props.Color.Val)
	}
	if props.FontSize != nil {
		writeValElement(b, "w:sz", props.FontSize.Val)
	}
	if props.SizeCS != nil {
		writeValElement(b, "w:szCs", props.SizeCS.Val)
	}
	if props.Highlight != nil {
		writeValElement(b, "w:highlight", props.Highlight.Val)
	}
	if props.Underline != nil {
		writeValElement(b, "w:u", props.Underline.Val)
	}
	writeToggle(b, "w:rtl", props.RTL)
	b.raw("</w:rPr>")
}

func writeHyperlink(b *xmlBuilder, h *hyperlinkXML) {
	b.raw("<w:hyperlink")
	if h.ID != "" {
		b.attr("r:id", h.ID)
	}
	if h.Anchor != "" {
		b.attr("w:anchor", h.Anchor)
	}
	if h.History != "" {
		b.attr("w:history", h.History)
	}
	b.raw(">")
	for _, r := range h.Runs {
		writeRun(b, r)
	}
	b.raw("</w:hyperlink>")
}

func writeTable(b *xmlBuilder, tbl *tableXML) {
	b.raw("<w:tbl>")
	if tbl.PropsRaw != nil {
		b.raw("<w:tblPr>")
		b.rawBytes(tbl.PropsRaw)
		b.raw("</w:tblPr>")
	}
	if tbl.GridRaw != nil {
		b.raw("<w:tblGrid>")
		b.rawBytes(tbl.GridRaw)
		b.raw("</w:tblGrid>")
	}
	for _, row := range tbl.Rows {
		b.raw("<w:tr>")
		if row.PropsRaw != nil {
			b.raw("<w:trPr>")
			b.rawBytes(row.PropsRaw)
			b.raw("</w:trPr>")
		}
		for _, cell := range row.Cells {
			b.raw("<w:tc>")
			if cell.PropsRaw != nil {
				b.raw("<w:tcPr>")
				b.rawBytes(cell.PropsRaw)
				b.raw("</w:tcPr>")
			}
			for _, cc := range cell.Content {
				switch {
				case cc.Paragraph != nil:
					writeParagraph(b, cc.Paragraph)
				case cc.Table != nil:
					writeTable(b, cc.Table)
				}
			}
			b.raw("</w:tc>")
		}
		b.raw("</w:tr>")
	}
	b.raw("</w:tbl>")
}
