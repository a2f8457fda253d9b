// Package mojibake repairs single-byte encoding corruption in Arabic text.
//
// The corruption it reverses is a code page misinterpretation: text written
// in Windows-1256 (Arabic) re-decoded as Windows-1252 or Latin-1, which
// turns every Arabic letter into an accented Latin character (for example
// "ÂÈ" for "آب"). Because both sides are single-byte code pages the damage
// is a fixed character-for-character substitution, so it can be reversed
// with a fixed rune-for-rune table.
package mojibake

import (
	"strings"
	"sync"
)

// Codec reverses Windows-1256 → Western code page misinterpretation.
// The substitution table is immutable after construction; a single Codec
// is safe for concurrent use.
type Codec struct {
	table map[rune]rune
}

var (
	tableOnce   sync.Once
	sharedTable map[rune]rune
)

// New returns a Codec with the full substitution table. The table is built
// once per process and shared by every Codec, so New is cheap to call per
// document or per worker.
func New() *Codec {
	tableOnce.Do(func() {
		sharedTable = buildTable()
	})
	return &Codec{table: sharedTable}
}

// Clean applies the substitution table to text in a single pass. Runes
// absent from the table pass through unchanged; absence of a mapping is
// normal, not an error. Each output rune is looked up from the original
// input rune only, never from an earlier substitution, so Clean is a no-op
// on already-clean text.
func (c *Codec) Clean(text string) string {
	if text == "" {
		return text
	}
	return strings.Map(func(r rune) rune {
		if repl, ok := c.table[r]; ok {
			return repl
		}
		return r
	}, text)
}

// Replacement returns the corrected rune for a corrupted one, if mapped.
func (c *Codec) Replacement(r rune) (rune, bool) {
	repl, ok := c.table[r]
	return repl, ok
}

// Size returns the number of entries in the substitution table.
func (c *Codec) Size() int {
	return len(c.table)
}
