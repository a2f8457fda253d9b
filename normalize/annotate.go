package normalize

import (
	"strings"

	"github.com/dlvinn/tashih/model"
	"github.com/dlvinn/tashih/script"
)

// Annotator applies RTL direction and right alignment to paragraphs.
// It makes no font or typeface changes.
type Annotator struct {
	classifier *script.Classifier
}

// NewAnnotator returns an Annotator gated on the given classifier.
func NewAnnotator(c *script.Classifier) *Annotator {
	return &Annotator{classifier: c}
}

// Annotate sets the paragraph-level RTL flag and right alignment on every
// non-empty paragraph, regardless of its content: a document in an RTL
// context wants uniform container-level direction even for embedded Latin
// spans. Run-level direction is set only when the paragraph classifies as
// Arabic (both levels must be flagged for correct rendering). Paragraphs
// carrying list numbering get the numbering itself flagged RTL so the
// bullet or number glyph renders on the visual right.
func (a *Annotator) Annotate(p model.Paragraph, c *FixCounters) {
	text := p.Text()
	if strings.TrimSpace(text) == "" {
		return
	}

	if p.Direction() != model.RTL {
		p.SetDirection(model.RTL)
		c.RTLParagraphs++
	}
	if p.Alignment() != model.AlignRight {
		p.SetAlignment(model.AlignRight)
		c.Alignments++
	}

	arabic := a.classifier.IsArabic(text)

	if p.HasNumbering() {
		p.SetNumberingDirection(model.RTL)
	}
	if arabic && isListParagraph(p, text) {
		c.BulletFixes++
	}

	if arabic {
		for _, r := range p.Runs() {
			if r.Direction() != model.RTL {
				r.SetDirection(model.RTL)
			}
		}
	}
}

// isListParagraph mirrors the heuristics used for bullet repair: explicit
// numbering metadata, a List-family style, or a literal bullet glyph.
func isListParagraph(p model.Paragraph, text string) bool {
	return p.HasNumbering() ||
		strings.HasPrefix(p.StyleName(), "List") ||
		strings.Contains(text, "•")
}
