package docx

import (
	"strconv"
	"strings"

	"github.com/dlvinn/tashih/model"
)

// Blocks returns the document's top-level blocks in order.
func (d *Document) Blocks() []model.Block {
	return d.blocks
}

// buildAdapters constructs the model views over the parsed XML. The
// adapters hold pointers into the XML tree, so mutations through the
// model interfaces land directly in the structures the writer emits.
func (d *Document) buildAdapters() {
	d.blocks = d.blocks[:0]
	for _, el := range d.doc.Body.Elements {
		switch {
		case el.Paragraph != nil:
			d.blocks = append(d.blocks, &paragraphAdapter{xml: el.Paragraph})
		case el.Table != nil:
			d.blocks = append(d.blocks, &tableAdapter{xml: el.Table})
		}
	}
}

// paragraphAdapter presents a paragraphXML through model.Paragraph.
type paragraphAdapter struct {
	model.ParagraphBlock
	xml *paragraphXML
}

func (p *paragraphAdapter) Text() string {
	return paragraphText(p.xml)
}

// Runs returns one model.Run per run segment, hyperlink runs included.
// Segments are pointers into the XML tree, so SetText through a returned
// run mutates the document.
func (p *paragraphAdapter) Runs() []model.Run {
	var runs []model.Run
	appendRun := func(r *runXML) {
		for _, seg := range r.Segs {
			if seg.Kind == segDrawing {
				continue
			}
			runs = append(runs, &runAdapter{xml: r, seg: seg})
		}
	}
	for _, c := range p.xml.Content {
		switch {
		case c.Run != nil:
			appendRun(c.Run)
		case c.Hyperlink != nil:
			for _, r := range c.Hyperlink.Runs {
				appendRun(r)
			}
		}
	}
	return runs
}

func (p *paragraphAdapter) Direction() model.Direction {
	if p.xml.Props.Bidi.on() {
		return model.RTL
	}
	return model.LTR
}

func (p *paragraphAdapter) SetDirection(d model.Direction) {
	if d == model.RTL {
		p.xml.Props.Bidi = &toggleXML{}
	} else {
		p.xml.Props.Bidi = nil
	}
}

func (p *paragraphAdapter) Alignment() model.Alignment {
	if p.xml.Props.Jc == nil {
		return model.AlignUnspecified
	}
	switch p.xml.Props.Jc.Val {
	case "left", "start":
		return model.AlignLeft
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignRight
	case "both", "justify", "distribute":
		return model.AlignJustify
	default:
		return model.AlignUnspecified
	}
}

func (p *paragraphAdapter) SetAlignment(a model.Alignment) {
	var val string
	switch a {
	case model.AlignLeft:
		val = "left"
	case model.AlignCenter:
		val = "center"
	case model.AlignRight:
		val = "right"
	case model.AlignJustify:
		val = "both"
	default:
		p.xml.Props.Jc = nil
		return
	}
	p.xml.Props.Jc = &valXML{Val: val}
}

func (p *paragraphAdapter) HasNumbering() bool {
	return p.xml.Props.NumPr != nil
}

// SetNumberingDirection marks the paragraph bidirectional so the list
// glyph renders on the reading-order side. OOXML has no per-numbering
// direction flag; the paragraph bidi property governs it.
func (p *paragraphAdapter) SetNumberingDirection(d model.Direction) {
	if d == model.RTL {
		p.xml.Props.Bidi = &toggleXML{}
	}
}

func (p *paragraphAdapter) StyleName() string {
	if p.xml.Props.Style == nil {
		return ""
	}
	return p.xml.Props.Style.Val
}

// ReplaceText collapses the paragraph content into a single run holding
// text, styled per style. Bookmarks and hyperlinks in the paragraph are
// dropped along with the runs they wrapped.
func (p *paragraphAdapter) ReplaceText(text string, style model.RunStyle) {
	props := &runPropsXML{}
	if style.FontName != "" {
		props.Fonts = &fontXML{
			ASCII: style.FontName,
			HAnsi: style.FontName,
			CS:    style.FontName,
		}
	}
	if style.SizeHalfPoints > 0 {
		sz := strconv.Itoa(style.SizeHalfPoints)
		props.FontSize = &valXML{Val: sz}
		props.SizeCS = &valXML{Val: sz}
	}
	if style.Bold {
		props.Bold = &toggleXML{}
	}
	if style.Italic {
		props.Italic = &toggleXML{}
	}

	run := &runXML{
		Props: props,
		Segs: []*segmentXML{{
			Kind:          segText,
			Text:          text,
			PreserveSpace: true,
		}},
	}
	p.xml.Content = []*paragraphContent{{Run: run}}
}

// runAdapter presents one segment of a runXML through model.Run. Style
// and direction live on the shared run, text on the segment.
type runAdapter struct {
	xml *runXML
	seg *segmentXML
}

func (r *runAdapter) Text() string {
	switch r.seg.Kind {
	case segTab:
		return "\t"
	case segBreak:
		return "\n"
	case segSym:
		return ""
	default:
		return r.seg.Text
	}
}

func (r *runAdapter) SetText(text string) {
	r.seg.Kind = segText
	r.seg.Text = text
	if text != strings.TrimSpace(text) {
		r.seg.PreserveSpace = true
	}
}

func (r *runAdapter) Style() model.RunStyle {
	var s model.RunStyle
	p := r.xml.Props
	if p == nil {
		return s
	}
	if p.Fonts != nil {
		s.FontName = p.Fonts.ASCII
		if s.FontName == "" {
			s.FontName = p.Fonts.CS
		}
	}
	if p.FontSize != nil {
		if n, err := strconv.Atoi(p.FontSize.Val); err == nil {
			s.SizeHalfPoints = n
		}
	}
	s.Bold = p.Bold.on()
	s.Italic = p.Italic.on()
	return s
}

func (r *runAdapter) Direction() model.Direction {
	if r.xml.Props != nil && r.xml.Props.RTL.on() {
		return model.RTL
	}
	return model.LTR
}

func (r *runAdapter) SetDirection(d model.Direction) {
	if d == model.RTL {
		if r.xml.Props == nil {
			r.xml.Props = &runPropsXML{}
		}
		r.xml.Props.RTL = &toggleXML{}
	} else if r.xml.Props != nil {
		r.xml.Props.RTL = nil
	}
}

// tableAdapter presents a tableXML through model.Table.
type tableAdapter struct {
	model.TableBlock
	xml *tableXML
}

func (t *tableAdapter) Rows() []model.Row {
	rows := make([]model.Row, len(t.xml.Rows))
	for i, row := range t.xml.Rows {
		rows[i] = &rowAdapter{xml: row}
	}
	return rows
}

// rowAdapter presents a tableRowXML through model.Row.
type rowAdapter struct {
	xml *tableRowXML
}

func (r *rowAdapter) Cells() []model.Cell {
	cells := make([]model.Cell, len(r.xml.Cells))
	for i, c := range r.xml.Cells {
		cells[i] = &cellAdapter{xml: c}
	}
	return cells
}

// Reverse mirrors the cell order in place. Cells are pointers, so their
// contents and identity are untouched.
func (r *rowAdapter) Reverse() error {
	cells := r.xml.Cells
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return nil
}

// cellAdapter presents a tableCellXML through model.Cell.
type cellAdapter struct {
	xml *tableCellXML
}

func (c *cellAdapter) Text() string {
	var parts []string
	for _, cc := range c.xml.Content {
		if cc.Paragraph != nil {
			parts = append(parts, paragraphText(cc.Paragraph))
		}
	}
	return strings.Join(parts, "\n")
}

func (c *cellAdapter) Paragraphs() []model.Paragraph {
	var paras []model.Paragraph
	for _, cc := range c.xml.Content {
		if cc.Paragraph != nil {
			paras = append(paras, &paragraphAdapter{xml: cc.Paragraph})
		}
	}
	return paras
}
