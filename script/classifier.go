// Package script classifies text spans by writing script. The library uses
// it to decide whether a paragraph or cell should be treated as Arabic for
// repair policy (direction flags, header reordering, table mirroring).
package script

import "strings"

// DefaultThreshold is the fraction of Arabic-block code points a span must
// exceed to classify as Arabic. It is a policy constant, not the result of
// linguistic analysis; tests probe the boundary and callers may tune it via
// Classifier.Threshold.
const DefaultThreshold = 0.30

// Classifier decides whether text should be treated as Arabic.
// The zero value is not useful; use NewClassifier. A Classifier is
// immutable after construction and safe for concurrent use.
type Classifier struct {
	// Threshold is the exclusive lower bound on the Arabic code point
	// ratio. A span classifies as Arabic iff ratio > Threshold.
	Threshold float64
}

// NewClassifier returns a Classifier using DefaultThreshold.
func NewClassifier() *Classifier {
	return &Classifier{Threshold: DefaultThreshold}
}

// IsArabic reports whether more than Threshold of the text's code points
// fall in the Arabic Unicode block (U+0600–U+06FF). Empty or
// whitespace-only input is never Arabic.
func (c *Classifier) IsArabic(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	arabic := 0
	total := 0
	for _, r := range text {
		total++
		if InArabicBlock(r) {
			arabic++
		}
	}

	return float64(arabic) > float64(total)*c.Threshold
}

// IsArabic classifies text using the default threshold.
func IsArabic(text string) bool {
	return defaultClassifier.IsArabic(text)
}

var defaultClassifier = NewClassifier()

// InArabicBlock reports whether r is in the base Arabic Unicode block
// (U+0600–U+06FF). This deliberately excludes the supplement and
// presentation-form blocks: the classifier gates repair policy on ordinary
// Arabic text, and the Mojibake discovery mode uses the same range to tell
// already-correct Arabic apart from suspicious extended-Latin bytes.
func InArabicBlock(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}
