package normalize

// WarningKind classifies non-fatal conditions surfaced by the pipeline.
type WarningKind int

const (
	// WarnContentMismatch indicates the before/after fingerprints
	// disagree beyond the tracked header-rewrite delta. The document is
	// still persisted; the caller can re-run with more conservative
	// settings.
	WarnContentMismatch WarningKind = iota
)

// String returns the warning kind name.
func (k WarningKind) String() string {
	switch k {
	case WarnContentMismatch:
		return "content-mismatch"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal condition recorded during a document run.
// Warnings never block the save.
type Warning struct {
	Kind    WarningKind
	Message string
}

// String formats the warning for logs.
func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}
