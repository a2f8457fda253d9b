package odt

import (
	"strings"

	"github.com/dlvinn/tashih/model"
)

// Blocks returns the document's top-level blocks in order. List items
// surface as paragraphs with numbering; the list structure itself is
// preserved for the writer.
func (d *Document) Blocks() []model.Block {
	return d.blocks
}

// buildAdapters constructs the model views over the parsed content. The
// adapters hold pointers into the XML structures, so mutations through
// the model interfaces land in what the writer emits.
func (d *Document) buildAdapters() {
	d.blocks = d.blocks[:0]
	for _, el := range d.content.Body {
		switch {
		case el.Paragraph != nil:
			d.blocks = append(d.blocks, &paragraphAdapter{xml: el.Paragraph})
		case el.List != nil:
			for _, item := range el.List.Items {
				for _, p := range item.Paragraphs {
					d.blocks = append(d.blocks, &paragraphAdapter{xml: p, inList: true})
				}
			}
		case el.Table != nil:
			d.blocks = append(d.blocks, &tableAdapter{xml: el.Table})
		}
	}
}

// paragraphAdapter presents a paragraphXML through model.Paragraph.
//
// Direction and alignment in ODF live in styles, not on the paragraph
// element, so the getters report only what the repair has set; the
// writer turns the flags into an automatic style assignment.
type paragraphAdapter struct {
	model.ParagraphBlock
	xml    *paragraphXML
	inList bool
}

func (p *paragraphAdapter) Text() string {
	return paragraphText(p.xml)
}

func (p *paragraphAdapter) Runs() []model.Run {
	runs := make([]model.Run, len(p.xml.Segs))
	for i, seg := range p.xml.Segs {
		runs[i] = &runAdapter{seg: seg}
	}
	return runs
}

func (p *paragraphAdapter) Direction() model.Direction {
	if p.xml.rtl {
		return model.RTL
	}
	return model.LTR
}

func (p *paragraphAdapter) SetDirection(d model.Direction) {
	p.xml.rtl = d == model.RTL
}

func (p *paragraphAdapter) Alignment() model.Alignment {
	if p.xml.alignRight {
		return model.AlignRight
	}
	return model.AlignUnspecified
}

func (p *paragraphAdapter) SetAlignment(a model.Alignment) {
	p.xml.alignRight = a == model.AlignRight
}

func (p *paragraphAdapter) HasNumbering() bool {
	return p.inList
}

// SetNumberingDirection flags the paragraph RTL; ODF renders the list
// glyph on the side the paragraph writing mode dictates.
func (p *paragraphAdapter) SetNumberingDirection(d model.Direction) {
	if d == model.RTL {
		p.xml.rtl = true
	}
}

func (p *paragraphAdapter) StyleName() string {
	return p.xml.StyleName
}

// ReplaceText collapses the paragraph content into a single text node.
// Run styling in ODF lives in style tables the repair does not rewrite,
// so style only affects DOCX output and is ignored here; the paragraph
// keeps its own style.
func (p *paragraphAdapter) ReplaceText(text string, style model.RunStyle) {
	p.xml.Segs = []*segmentXML{{Kind: segText, Text: text}}
}

// runAdapter presents one paragraph segment through model.Run.
type runAdapter struct {
	seg *segmentXML
}

func (r *runAdapter) Text() string {
	return segmentText(r.seg)
}

// SetText rewrites the segment text. Spans and links keep their kind so
// their style or target survives; whitespace segments become plain text.
func (r *runAdapter) SetText(text string) {
	switch r.seg.Kind {
	case segSpan, segLink:
		r.seg.Text = text
	default:
		r.seg.Kind = segText
		r.seg.Text = text
	}
}

// Style returns the zero style: ODF fonts and sizes resolve through
// style tables the repair leaves untouched.
func (r *runAdapter) Style() model.RunStyle {
	return model.RunStyle{}
}

func (r *runAdapter) Direction() model.Direction {
	return model.LTR
}

// SetDirection is a no-op: span direction in ODF follows the paragraph
// writing mode, there is no per-span flag to set.
func (r *runAdapter) SetDirection(model.Direction) {}

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

// Reverse mirrors the cell order in place.
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
	parts := make([]string, len(c.xml.Paragraphs))
	for i, p := range c.xml.Paragraphs {
		parts[i] = paragraphText(p)
	}
	return strings.Join(parts, "\n")
}

func (c *cellAdapter) Paragraphs() []model.Paragraph {
	paras := make([]model.Paragraph, len(c.xml.Paragraphs))
	for i, p := range c.xml.Paragraphs {
		paras[i] = &paragraphAdapter{xml: p}
	}
	return paras
}
