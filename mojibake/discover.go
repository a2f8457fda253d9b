package mojibake

import (
	"sort"

	"github.com/dlvinn/tashih/script"
)

// Discovery reports which corrupted characters appear in a set of text
// samples. It supports operators extending the substitution table without
// guessing: Found lists characters the codec already maps, Unmapped lists
// extended-Latin characters that look like corruption but have no mapping
// yet. Discovery never corrects anything.
type Discovery struct {
	// Found holds mapped characters seen in the samples, ascending.
	Found []rune
	// Unmapped holds suspicious unmapped characters seen in the samples,
	// ascending. Suspicious means the code point is in the single-byte
	// extended range (128–255) and is not Arabic.
	Unmapped []rune
}

// Discover scans samples and classifies every character against the
// substitution table.
func (c *Codec) Discover(samples []string) Discovery {
	found := make(map[rune]bool)
	unmapped := make(map[rune]bool)

	for _, sample := range samples {
		for _, r := range sample {
			if _, ok := c.table[r]; ok {
				found[r] = true
				continue
			}
			if r >= 128 && r <= 255 && !script.InArabicBlock(r) {
				unmapped[r] = true
			}
		}
	}

	return Discovery{
		Found:    sortedRunes(found),
		Unmapped: sortedRunes(unmapped),
	}
}

func sortedRunes(set map[rune]bool) []rune {
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}
