package mojibake

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/dlvinn/tashih/script"
)

// overrides holds entries that do not fall out of the Windows-1256 round
// trip: Arabic-Indic digits (Windows-1256 has no digit row, these are the
// cp864 digit bytes misread as Latin-1), a field-reported variant of alef
// with madda, and the non-breaking space that the corrupting round trip
// leaves behind. Overrides win over generated entries.
var overrides = map[rune]rune{
	'À': 'آ', // reported variant of U+0622 (ÀB for آب)

	'°': '٠',
	'±': '١',
	'²': '٢',
	'³': '٣',
	'´': '٤',
	'µ': '٥',
	'¶': '٦',
	'·': '٧',
	'¸': '٨',
	'¹': '٩',

	' ': ' ',
}

// buildTable derives the substitution table from the actual code pages:
// for every high byte, the rune Windows-1256 assigns to it is the intended
// character, and the runes Windows-1252 and Latin-1 assign to the same byte
// are its corrupted appearances. Only bytes whose intended character is in
// the Arabic block are mapped, so shared punctuation (« », °, NBSP) never
// becomes a key by generation.
//
// The table is data, not control flow: it is built once per process and
// every entry is independently testable. Construction
// refuses any entry that would let the key and value sets intersect; if a
// corrupted character also appeared as a correction, re-running Clean on
// fixed text would corrupt it again.
func buildTable() map[rune]rune {
	table := make(map[rune]rune, 80)

	western := []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252}

	for b := 0x80; b <= 0xFF; b++ {
		intended := charmap.Windows1256.DecodeByte(byte(b))
		if !script.InArabicBlock(intended) {
			continue
		}

		for _, cm := range western {
			corrupted := cm.DecodeByte(byte(b))
			if corrupted == utf8.RuneError || corrupted == intended {
				continue
			}
			// Latin-1 maps 0x80–0x9F to C1 controls; those bytes never
			// survive as text, only their Windows-1252 readings do.
			if corrupted >= 0x80 && corrupted <= 0x9F {
				continue
			}
			if _, exists := table[corrupted]; !exists {
				table[corrupted] = intended
			}
		}
	}

	for corrupted, intended := range overrides {
		table[corrupted] = intended
	}

	// Idempotence safeguard: no corrupted character may itself be a
	// correction. The ranges make this structurally impossible (keys are
	// extended Latin, values Arabic block or space), but the property is
	// what Clean's determinism rests on, so it is enforced rather than
	// assumed.
	values := make(map[rune]bool, len(table))
	for _, intended := range table {
		values[intended] = true
	}
	for corrupted := range table {
		if values[corrupted] {
			delete(table, corrupted)
		}
	}

	return table
}
