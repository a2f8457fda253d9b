package normalize

import (
	"fmt"
	"unicode/utf8"

	"github.com/dlvinn/tashih/model"
)

// Fingerprint is a small structural digest of a document, used as a
// before/after guard against unintended content loss. It is derived on
// demand and never persisted.
type Fingerprint struct {
	// Paragraphs counts every paragraph, including those inside table
	// cells.
	Paragraphs int
	// Tables counts top-level tables.
	Tables int
	// Characters counts code points across all paragraph text.
	Characters int
}

// String formats the fingerprint for reports.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%d paragraphs, %d tables, %d chars",
		f.Paragraphs, f.Tables, f.Characters)
}

// FingerprintOf walks the document and computes its fingerprint.
func FingerprintOf(doc model.Document) Fingerprint {
	var fp Fingerprint
	for _, block := range doc.Blocks() {
		switch b := block.(type) {
		case model.Paragraph:
			fp.Paragraphs++
			fp.Characters += utf8.RuneCountInString(b.Text())
		case model.Table:
			fp.Tables++
			for _, row := range b.Rows() {
				for _, cell := range row.Cells() {
					for _, p := range cell.Paragraphs() {
						fp.Paragraphs++
						fp.Characters += utf8.RuneCountInString(p.Text())
					}
				}
			}
		}
	}
	return fp
}

// CompareFingerprints checks a before/after pair. Paragraph and table
// counts must match exactly. The character count is advisory: header
// rewrites legitimately change it, so the pipeline tracks the exact
// expected delta and anything beyond it is flagged. The result is a
// warning, never a fatal error; the caller still persists the document.
func CompareFingerprints(before, after Fingerprint, expectedCharDelta int) *Warning {
	if before.Paragraphs != after.Paragraphs || before.Tables != after.Tables {
		return &Warning{
			Kind: WarnContentMismatch,
			Message: fmt.Sprintf("structural mismatch: before %s, after %s",
				before, after),
		}
	}

	want := before.Characters + expectedCharDelta
	if after.Characters != want {
		return &Warning{
			Kind: WarnContentMismatch,
			Message: fmt.Sprintf("character count drift: got %d, want %d (before %d, header rewrites account for %+d)",
				after.Characters, want, before.Characters, expectedCharDelta),
		}
	}

	return nil
}
