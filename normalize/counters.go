package normalize

// FixCounters tallies the repairs applied to one document. A fresh value
// is created per document run and reported in the [Report]; counters are
// never shared across documents.
type FixCounters struct {
	// EncodingFixes counts paragraphs whose run text changed under the
	// Mojibake codec.
	EncodingFixes int
	// RTLParagraphs counts paragraphs whose direction flag was set to RTL.
	RTLParagraphs int
	// Alignments counts paragraphs whose alignment was changed to right.
	Alignments int
	// HeaderReorders counts numbered headers rewritten into RTL order.
	HeaderReorders int
	// TableCellsMirrored counts cells repositioned by table mirroring.
	TableCellsMirrored int
	// BulletFixes counts Arabic list paragraphs whose numbering was
	// flagged RTL.
	BulletFixes int
}

// Total returns the sum of all counters.
func (c FixCounters) Total() int {
	return c.EncodingFixes + c.RTLParagraphs + c.Alignments +
		c.HeaderReorders + c.TableCellsMirrored + c.BulletFixes
}
