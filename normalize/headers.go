package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlvinn/tashih/model"
	"github.com/dlvinn/tashih/script"
)

// Manually numbered section headers arrive in Western reading order with
// the number glued after the label ("النطاق.2" or "المجال .5"); the
// intended RTL rendering is "2. النطاق". Two candidate patterns, tried in
// order: number directly after the dot, and number after whitespace plus a
// dot. Multi-level numbers ("1.2.3") are kept as one opaque token.
var (
	headerTight  = regexp.MustCompile(`^(.+?)\.(\d+(?:\.\d+)*)$`)
	headerSpaced = regexp.MustCompile(`^(.+?)\s+\.(\d+(?:\.\d+)*)$`)
)

// HeaderNormalizer rewrites numbered section headers into RTL reading
// order. It is stateless and safe for concurrent use.
type HeaderNormalizer struct {
	classifier *script.Classifier
}

// NewHeaderNormalizer returns a normalizer gated on the given classifier.
func NewHeaderNormalizer(c *script.Classifier) *HeaderNormalizer {
	return &HeaderNormalizer{classifier: c}
}

// Normalize rewrites "label.N" or "label .N" into "N. label" when the
// label classifies as Arabic. It returns the input unchanged otherwise:
// a non-match is not an error, and the Arabic guard keeps shapes like
// "file.1" or "v1.2" untouched.
func (n *HeaderNormalizer) Normalize(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)

	m := headerTight.FindStringSubmatch(trimmed)
	if m == nil {
		m = headerSpaced.FindStringSubmatch(trimmed)
	}
	if m == nil {
		return text, false
	}

	label := strings.TrimSpace(m[1])
	number := strings.TrimSpace(m[2])

	if !n.classifier.IsArabic(label) {
		return text, false
	}

	return number + ". " + label, true
}

// Apply rewrites a live paragraph. On a match it collapses every run into
// a single run holding the reconstructed text and carrying the first run's
// style attributes (font name, size, bold, italic); interior style
// boundaries of mixed-style headers are deliberately lost. It returns the
// rune-count delta the rewrite introduced, for the integrity validator,
// and whether a rewrite happened.
func (n *HeaderNormalizer) Apply(p model.Paragraph) (delta int, changed bool) {
	old := p.Text()
	fixed, ok := n.Normalize(old)
	if !ok {
		return 0, false
	}

	runs := p.Runs()
	if len(runs) == 0 {
		return 0, false
	}

	p.ReplaceText(fixed, runs[0].Style())
	return utf8.RuneCountInString(fixed) - utf8.RuneCountInString(old), true
}
