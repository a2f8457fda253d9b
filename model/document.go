package model

// Direction is a paragraph or run direction flag. The zero value is LTR,
// matching the default of both container formats.
type Direction int

const (
	// LTR (left-to-right) for Latin, Cyrillic, etc.
	LTR Direction = iota
	// RTL (right-to-left) for Arabic, Hebrew, etc.
	RTL
)

// String returns "LTR" or "RTL".
func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// Alignment is a paragraph alignment flag. The zero value means the
// paragraph carries no explicit alignment.
type Alignment int

const (
	// AlignUnspecified indicates no explicit alignment.
	AlignUnspecified Alignment = iota
	// AlignLeft aligns to the left margin.
	AlignLeft
	// AlignCenter centers the paragraph.
	AlignCenter
	// AlignRight aligns to the right margin.
	AlignRight
	// AlignJustify justifies both margins.
	AlignJustify
)

// String returns the lowercase name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unspecified"
	}
}

// RunStyle holds the style attributes preserved across a run rewrite.
type RunStyle struct {
	FontName string
	// SizeHalfPoints is the font size in half-points (the DOCX unit);
	// zero means unset.
	SizeHalfPoints int
	Bold           bool
	Italic         bool
}

// Document is an ordered sequence of top-level blocks. The repair pipeline
// never constructs or destroys a Document; it mutates blocks reachable
// from one that a format package opened.
type Document interface {
	Blocks() []Block
}

// Block is a top-level document element: a *Paragraph or a *Table.
// Implementations embed one of the two marker methods.
type Block interface {
	blockKind() string
}

// ParagraphBlock marks a Block as a paragraph. Format packages embed it in
// their paragraph adapter types.
type ParagraphBlock struct{}

func (ParagraphBlock) blockKind() string { return "paragraph" }

// TableBlock marks a Block as a table.
type TableBlock struct{}

func (TableBlock) blockKind() string { return "table" }

// TextContainer is the read-only view shared by every text-bearing node.
type TextContainer interface {
	// Text returns the full text content of the node.
	Text() string
}

// Paragraph is a mutable paragraph: an ordered sequence of runs plus
// direction, alignment, and list-numbering metadata.
type Paragraph interface {
	Block
	TextContainer

	Runs() []Run

	Direction() Direction
	SetDirection(Direction)

	Alignment() Alignment
	SetAlignment(Alignment)

	// HasNumbering reports whether the paragraph carries list-numbering
	// metadata (a numbered or bulleted list item).
	HasNumbering() bool
	// SetNumberingDirection flags the list numbering itself so the
	// bullet or number glyph renders on the correct visual side.
	SetNumberingDirection(Direction)

	// StyleName returns the paragraph style identifier, or "".
	StyleName() string

	// ReplaceText collapses the paragraph's runs into a single run
	// holding text and carrying style. It never drops text outside the
	// replacement itself; callers pass the style captured from the
	// first run.
	ReplaceText(text string, style RunStyle)
}

// Run is an immutable-length text span with style attributes and its own
// direction flag, distinct from the paragraph-level flag.
type Run interface {
	TextContainer

	SetText(string)
	Style() RunStyle
	Direction() Direction
	SetDirection(Direction)
}

// Table is an ordered sequence of rows.
type Table interface {
	Block
	Rows() []Row
}

// Row is an ordered sequence of cells that can be reversed in place.
type Row interface {
	Cells() []Cell

	// Reverse mirrors the cell order in place. It is a pure reordering:
	// cell identity and contents are unaffected. It returns an error
	// only when the underlying cell collection cannot be reordered,
	// which indicates a structurally invalid document.
	Reverse() error
}

// Cell contains an ordered sequence of paragraphs.
type Cell interface {
	TextContainer
	Paragraphs() []Paragraph
}
