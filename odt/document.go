package odt

import (
	"encoding/xml"
	"io"
)

// contentXML is the parsed skeleton of content.xml. Font declarations and
// automatic styles pass through as raw XML; the writer appends the RTL
// styles it needs before re-emitting them.
type contentXML struct {
	FontFaceDecls []byte // inner XML of <office:font-face-decls>, or nil
	AutoStyles    []byte // inner XML of <office:automatic-styles>, or nil
	Body          []*bodyElement
}

// bodyElement is one top-level element of office:text.
type bodyElement struct {
	Paragraph *paragraphXML // <text:p> or <text:h>
	List      *listXML      // <text:list>
	Table     *tableXML     // <table:table>
}

// rawXML captures an element's inner XML verbatim.
type rawXML struct {
	Inner []byte `xml:",innerxml"`
}

// UnmarshalXML walks office:document-content down to office:text,
// collecting body elements in document order.
func (c *contentXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case "font-face-decls":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				c.FontFaceDecls = raw.Inner
			case "automatic-styles":
				var raw rawXML
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				c.AutoStyles = raw.Inner
			case "body", "text":
				// descend
			case "p", "h":
				p := &paragraphXML{Heading: t.Name.Local == "h"}
				if err := p.unmarshal(d, t); err != nil {
					return err
				}
				c.Body = append(c.Body, &bodyElement{Paragraph: p})
			case "list":
				l := &listXML{}
				if err := l.unmarshal(d, t); err != nil {
					return err
				}
				c.Body = append(c.Body, &bodyElement{List: l})
			case "table":
				tbl := &tableXML{}
				if err := tbl.unmarshal(d, t); err != nil {
					return err
				}
				c.Body = append(c.Body, &bodyElement{Table: tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "document-content" {
				return nil
			}
		}
	}
}

// paragraphXML represents a <text:p> or <text:h> element.
type paragraphXML struct {
	Heading      bool
	OutlineLevel string // text:outline-level on headings
	StyleName    string // text:style-name
	Segs         []*segmentXML

	// repair flags consumed by the writer
	rtl        bool
	alignRight bool
}

// segKind distinguishes paragraph content segments.
type segKind int

const (
	segText  segKind = iota // bare character data
	segSpan                 // <text:span>
	segSpace                // <text:s>
	segTab                  // <text:tab>
	segBreak                // <text:line-break>
	segLink                 // <text:a>
)

// segmentXML is one ordered piece of paragraph content.
type segmentXML struct {
	Kind segKind

	Text      string // segText, segSpan, segLink
	StyleName string // segSpan: text:style-name
	Count     int    // segSpace: text:c, 1 when absent
	Href      string // segLink: xlink:href
}

// unmarshal parses paragraph children in order. Nested spans are
// flattened; the repair only rewrites text, it never restyles fragments.
func (p *paragraphXML) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	p.StyleName = attrValue(start, "style-name")
	if p.Heading {
		p.OutlineLevel = attrValue(start, "outline-level")
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.CharData:
			p.appendText(string(t))
		case xml.StartElement:
			switch t.Name.Local {
			case "span":
				seg := &segmentXML{Kind: segSpan, StyleName: attrValue(t, "style-name")}
				txt, err := collectText(d)
				if err != nil {
					return err
				}
				seg.Text = txt
				p.Segs = append(p.Segs, seg)
			case "s":
				count := 1
				if c := attrValue(t, "c"); c != "" {
					count = atoiDefault(c, 1)
				}
				if err := d.Skip(); err != nil {
					return err
				}
				p.Segs = append(p.Segs, &segmentXML{Kind: segSpace, Count: count})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				p.Segs = append(p.Segs, &segmentXML{Kind: segTab})
			case "line-break":
				if err := d.Skip(); err != nil {
					return err
				}
				p.Segs = append(p.Segs, &segmentXML{Kind: segBreak})
			case "a":
				seg := &segmentXML{Kind: segLink, Href: attrValue(t, "href")}
				txt, err := collectText(d)
				if err != nil {
					return err
				}
				seg.Text = txt
				p.Segs = append(p.Segs, seg)
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

// appendText adds bare character data, merging adjacent text segments.
func (p *paragraphXML) appendText(text string) {
	if text == "" {
		return
	}
	if len(p.Segs) > 0 {
		last := p.Segs[len(p.Segs)-1]
		if last.Kind == segText {
			last.Text += text
			return
		}
	}
	p.Segs = append(p.Segs, &segmentXML{Kind: segText, Text: text})
}

// collectText drains an element and returns its flattened text content.
func collectText(d *xml.Decoder) (string, error) {
	var out []byte
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			out = append(out, t...)
		case xml.StartElement:
			switch t.Name.Local {
			case "s":
				count := 1
				if c := attrValue(t, "c"); c != "" {
					count = atoiDefault(c, 1)
				}
				for i := 0; i < count; i++ {
					out = append(out, ' ')
				}
			case "tab":
				out = append(out, '\t')
			case "line-break":
				out = append(out, '\n')
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				return string(out), nil
			}
			depth--
		}
	}
}

// listXML represents a <text:list>. Items are flattened to their
// paragraphs; nesting depth is not preserved beyond the item boundary.
type listXML struct {
	StyleName string // text:style-name
	Items     []*listItemXML
}

// listItemXML is one <text:list-item> holding paragraphs.
type listItemXML struct {
	Paragraphs []*paragraphXML
}

func (l *listXML) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	l.StyleName = attrValue(start, "style-name")
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
			if t.Name.Local == "list-item" {
				item := &listItemXML{}
				if err := item.unmarshal(d, t); err != nil {
					return err
				}
				l.Items = append(l.Items, item)
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (li *listItemXML) unmarshal(d *xml.Decoder, start xml.StartElement) error {
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
			case "p", "h":
				p := &paragraphXML{Heading: t.Name.Local == "h"}
				if err := p.unmarshal(d, t); err != nil {
					return err
				}
				li.Paragraphs = append(li.Paragraphs, p)
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

// tableXML represents a <table:table>. Columns carry through unparsed.
type tableXML struct {
	StyleName string
	Name      string
	Columns   []*columnXML
	Rows      []*tableRowXML
}

// columnXML is a <table:table-column> declaration.
type columnXML struct {
	StyleName string
	Repeated  string // table:number-columns-repeated
}

// tableRowXML is a <table:table-row>. Cells are pointers so mirroring
// reorders references, preserving cell identity.
type tableRowXML struct {
	StyleName string
	Cells     []*tableCellXML
}

// tableCellXML is a <table:table-cell>.
type tableCellXML struct {
	StyleName  string
	ValueType  string // office:value-type
	Paragraphs []*paragraphXML
}

func (tbl *tableXML) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	tbl.StyleName = attrValue(start, "style-name")
	tbl.Name = attrValue(start, "name")
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
			case "table-column":
				col := &columnXML{
					StyleName: attrValue(t, "style-name"),
					Repeated:  attrValue(t, "number-columns-repeated"),
				}
				if err := d.Skip(); err != nil {
					return err
				}
				tbl.Columns = append(tbl.Columns, col)
			case "table-row":
				row := &tableRowXML{StyleName: attrValue(t, "style-name")}
				if err := row.unmarshal(d, t); err != nil {
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

func (row *tableRowXML) unmarshal(d *xml.Decoder, start xml.StartElement) error {
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
			if t.Name.Local == "table-cell" {
				cell := &tableCellXML{
					StyleName: attrValue(t, "style-name"),
					ValueType: attrValue(t, "value-type"),
				}
				if err := cell.unmarshal(d, t); err != nil {
					return err
				}
				row.Cells = append(row.Cells, cell)
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (c *tableCellXML) unmarshal(d *xml.Decoder, start xml.StartElement) error {
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
			case "p", "h":
				p := &paragraphXML{Heading: t.Name.Local == "h"}
				if err := p.unmarshal(d, t); err != nil {
					return err
				}
				c.Paragraphs = append(c.Paragraphs, p)
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

// atoiDefault parses a decimal string, falling back to def.
func atoiDefault(s string, def int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	if s == "" {
		return def
	}
	return n
}
