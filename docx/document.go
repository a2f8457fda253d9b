package docx

import (
	"encoding/xml"
	"io"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Paragraphs and tables are kept in
// document order; section properties pass through as raw XML so the page
// setup survives the rewrite untouched.
type bodyXML struct {
	Elements []*bodyElement
	SectPr   []byte // raw inner XML of <w:sectPr>, or nil
}

// bodyElement represents an element in the document body (paragraph or table).
type bodyElement struct {
	Paragraph *paragraphXML // non-nil for <w:p>
	Table     *tableXML     // non-nil for <w:tbl>
}

// rawXML captures the inner XML of an element verbatim. The writer
// re-emits it inside the same tag, which is safe because the output
// declares the same namespace prefixes the input used.
type rawXML struct {
	Inner []byte `xml:",innerxml"`
}

// UnmarshalXML parses the body manually to preserve paragraph/table order,
// which encoding/xml's field collection would lose.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p := &paragraphXML{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &bodyElement{Paragraph: p})
			case "tbl":
				tbl := &tableXML{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &bodyElement{Table: tbl})
			case "sectPr":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				b.SectPr = raw.Inner
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Props   paragraphPropsXML
	Content []*paragraphContent
}

// paragraphContent is one ordered child of a paragraph: a run, a
// hyperlink wrapping runs, or a bookmark marker.
type paragraphContent struct {
	Run           *runXML
	Hyperlink     *hyperlinkXML
	BookmarkStart *bookmarkXML
	BookmarkEnd   *bookmarkEndXML
}

// UnmarshalXML parses paragraph children in order.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Props, &t); err != nil {
					return err
				}
			case "r":
				r := &runXML{}
				if err := d.DecodeElement(r, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &paragraphContent{Run: r})
			case "hyperlink":
				h := &hyperlinkXML{}
				if err := d.DecodeElement(h, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &paragraphContent{Hyperlink: h})
			case "bookmarkStart":
				bm := &bookmarkXML{}
				if err := d.DecodeElement(bm, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &paragraphContent{BookmarkStart: bm})
			case "bookmarkEnd":
				bm := &bookmarkEndXML{}
				if err := d.DecodeElement(bm, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &paragraphContent{BookmarkEnd: bm})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>). Pointer
// fields record presence so the writer re-emits only what was there
// (plus whatever the repair set).
type paragraphPropsXML struct {
	Style      *valXML           `xml:"pStyle"`
	NumPr      *numberingPropsXML `xml:"numPr"`
	Bidi       *toggleXML        `xml:"bidi"`
	Spacing    *spacingXML       `xml:"spacing"`
	Indent     *indentXML        `xml:"ind"`
	Jc         *valXML           `xml:"jc"`
	OutlineLvl *valXML           `xml:"outlineLvl"`
}

// valXML represents an element carrying a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// toggleXML represents an on/off property; an empty Val means on.
type toggleXML struct {
	Val string `xml:"val,attr"`
}

// on reports whether the toggle is set.
func (t *toggleXML) on() bool {
	return t != nil && t.Val != "0" && t.Val != "false"
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  *valXML `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"`
	After  string `xml:"after,attr"`
	Line   string `xml:"line,attr"`
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// runXML represents a text run (<w:r>): run properties plus an ordered
// sequence of content segments.
type runXML struct {
	Props *runPropsXML
	Segs  []*segmentXML
}

// segKind distinguishes run content segments.
type segKind int

const (
	segText segKind = iota
	segTab
	segBreak
	segDrawing
	segSym
)

// segmentXML is one ordered piece of run content.
type segmentXML struct {
	Kind segKind

	Text          string // segText
	PreserveSpace bool   // segText: xml:space="preserve"
	BreakType     string // segBreak: page, column, textWrapping, or ""
	Raw           []byte // segDrawing: inner XML of <w:drawing>
	SymFont       string // segSym
	SymChar       string // segSym
}

// UnmarshalXML parses run children in order, flattening text, tabs, and
// breaks into segments and passing drawings through as raw XML.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				r.Props = &runPropsXML{}
				if err := d.DecodeElement(r.Props, &t); err != nil {
					return err
				}
			case "t":
				var txt textXML
				if err := d.DecodeElement(&txt, &t); err != nil {
					return err
				}
				r.Segs = append(r.Segs, &segmentXML{
					Kind:          segText,
					Text:          txt.Value,
					PreserveSpace: txt.Space == "preserve",
				})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Segs = append(r.Segs, &segmentXML{Kind: segTab})
			case "br":
				brType := attrValue(t, "type")
				if err := d.Skip(); err != nil {
					return err
				}
				r.Segs = append(r.Segs, &segmentXML{Kind: segBreak, BreakType: brType})
			case "drawing":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				r.Segs = append(r.Segs, &segmentXML{Kind: segDrawing, Raw: raw.Inner})
			case "sym":
				seg := &segmentXML{
					Kind:    segSym,
					SymFont: attrValue(t, "font"),
					SymChar: attrValue(t, "char"),
				}
				if err := d.Skip(); err != nil {
					return err
				}
				r.Segs = append(r.Segs, seg)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// attrValue returns the named attribute by local name, or "".
func attrValue(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Fonts     *fontXML   `xml:"rFonts"`
	Bold      *toggleXML `xml:"b"`
	Italic    *toggleXML `xml:"i"`
	Strike    *toggleXML `xml:"strike"`
	Color     *valXML    `xml:"color"`
	FontSize  *valXML    `xml:"sz"`
	SizeCS    *valXML    `xml:"szCs"`
	Highlight *valXML    `xml:"highlight"`
	Underline *valXML    `xml:"u"`
	RTL       *toggleXML `xml:"rtl"`
}

// fontXML represents font settings.
type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"`
	Value string `xml:",chardata"`
}

// hyperlinkXML represents a hyperlink wrapping runs.
type hyperlinkXML struct {
	ID      string    `xml:"id,attr"`
	Anchor  string    `xml:"anchor,attr"`
	History string    `xml:"history,attr"`
	Runs    []*runXML `xml:"r"`
}

// bookmarkXML represents a bookmark start marker.
type bookmarkXML struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// bookmarkEndXML represents a bookmark end marker.
type bookmarkEndXML struct {
	ID string `xml:"id,attr"`
}

// tableXML represents a table (<w:tbl>). Table-level and grid properties
// pass through as raw XML; only rows and cells are modeled because only
// their order and contents are repaired.
type tableXML struct {
	PropsRaw []byte // inner XML of <w:tblPr>
	GridRaw  []byte // inner XML of <w:tblGrid>
	Rows     []*tableRowXML
}

// UnmarshalXML parses the table children.
func (tbl *tableXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tblPr":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				tbl.PropsRaw = raw.Inner
			case "tblGrid":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				tbl.GridRaw = raw.Inner
			case "tr":
				row := &tableRowXML{}
				if err := d.DecodeElement(row, &t); err != nil {
					return err
				}
				tbl.Rows = append(tbl.Rows, row)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// tableRowXML represents a table row (<w:tr>). Cells are held by pointer
// so mirroring reorders references, preserving cell identity.
type tableRowXML struct {
	PropsRaw []byte // inner XML of <w:trPr>
	Cells    []*tableCellXML
}

// UnmarshalXML parses the row children.
func (row *tableRowXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trPr":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				row.PropsRaw = raw.Inner
			case "tc":
				cell := &tableCellXML{}
				if err := d.DecodeElement(cell, &t); err != nil {
					return err
				}
				row.Cells = append(row.Cells, cell)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// tableCellXML represents a table cell (<w:tc>): cell properties as raw
// XML plus ordered content (paragraphs and nested tables).
type tableCellXML struct {
	PropsRaw []byte // inner XML of <w:tcPr>
	Content  []*cellContent
}

// cellContent is one ordered child of a cell.
type cellContent struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML parses the cell children in order.
func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				c.PropsRaw = raw.Inner
			case "p":
				p := &paragraphXML{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				c.Content = append(c.Content, &cellContent{Paragraph: p})
			case "tbl":
				tbl := &tableXML{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return err
				}
				c.Content = append(c.Content, &cellContent{Table: tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}
