package normalize

// In-memory document model used by the package tests. The concrete format
// adapters (docx, odt) have their own tests; here the transforms are
// exercised against the interfaces alone.

import (
	"strings"

	"github.com/dlvinn/tashih/model"
)

type memDoc struct {
	blocks []model.Block
}

func (d *memDoc) Blocks() []model.Block { return d.blocks }

type memRun struct {
	text  string
	style model.RunStyle
	dir   model.Direction
}

func (r *memRun) Text() string                  { return r.text }
func (r *memRun) SetText(s string)              { r.text = s }
func (r *memRun) Style() model.RunStyle         { return r.style }
func (r *memRun) Direction() model.Direction    { return r.dir }
func (r *memRun) SetDirection(d model.Direction) { r.dir = d }

type memParagraph struct {
	model.ParagraphBlock

	runs     []*memRun
	dir      model.Direction
	align    model.Alignment
	numbered bool
	numDir   model.Direction
	style    string
}

func (p *memParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

func (p *memParagraph) Runs() []model.Run {
	runs := make([]model.Run, len(p.runs))
	for i, r := range p.runs {
		runs[i] = r
	}
	return runs
}

func (p *memParagraph) Direction() model.Direction     { return p.dir }
func (p *memParagraph) SetDirection(d model.Direction) { p.dir = d }
func (p *memParagraph) Alignment() model.Alignment     { return p.align }
func (p *memParagraph) SetAlignment(a model.Alignment) { p.align = a }
func (p *memParagraph) HasNumbering() bool             { return p.numbered }
func (p *memParagraph) SetNumberingDirection(d model.Direction) {
	p.numDir = d
}
func (p *memParagraph) StyleName() string { return p.style }

func (p *memParagraph) ReplaceText(text string, style model.RunStyle) {
	p.runs = []*memRun{{text: text, style: style}}
}

type memCell struct {
	paras []*memParagraph
}

func (c *memCell) Text() string {
	parts := make([]string, len(c.paras))
	for i, p := range c.paras {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

func (c *memCell) Paragraphs() []model.Paragraph {
	paras := make([]model.Paragraph, len(c.paras))
	for i, p := range c.paras {
		paras[i] = p
	}
	return paras
}

type memRow struct {
	cells []*memCell
}

func (r *memRow) Cells() []model.Cell {
	cells := make([]model.Cell, len(r.cells))
	for i, c := range r.cells {
		cells[i] = c
	}
	return cells
}

func (r *memRow) Reverse() error {
	for i, j := 0, len(r.cells)-1; i < j; i, j = i+1, j-1 {
		r.cells[i], r.cells[j] = r.cells[j], r.cells[i]
	}
	return nil
}

type memTable struct {
	model.TableBlock

	rows []*memRow
}

func (t *memTable) Rows() []model.Row {
	rows := make([]model.Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r
	}
	return rows
}

// para builds a single-run paragraph.
func para(text string) *memParagraph {
	return &memParagraph{runs: []*memRun{{text: text}}}
}

// cellOf builds a cell holding one paragraph per text.
func cellOf(texts ...string) *memCell {
	c := &memCell{}
	for _, t := range texts {
		c.paras = append(c.paras, para(t))
	}
	return c
}

// rowOf builds a row of single-paragraph cells.
func rowOf(texts ...string) *memRow {
	r := &memRow{}
	for _, t := range texts {
		r.cells = append(r.cells, cellOf(t))
	}
	return r
}

// cellTexts flattens a row into its cell texts, for assertions.
func cellTexts(r *memRow) []string {
	texts := make([]string, len(r.cells))
	for i, c := range r.cells {
		texts[i] = c.Text()
	}
	return texts
}
