package tashih

import (
	"strings"

	"github.com/dlvinn/tashih/normalize"
)

// Warning is a non-fatal issue reported by a repair run, such as an
// integrity check noticing the fixed document drifted from the original.
type Warning = normalize.Warning

// FormatWarnings renders warnings as a single semicolon-separated string
// for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
