package tashih

// FixOptions holds configuration for a repair run.
type FixOptions struct {
	// Transform toggles
	fixEncoding  bool
	fixHeaders   bool
	mirrorTables bool

	// Output control
	dryRun     bool
	outputPath string // "" means derive <stem>_fixed<ext>
}

// defaultOptions returns the default repair options: every transform on,
// output written next to the input.
func defaultOptions() FixOptions {
	return FixOptions{
		fixEncoding:  true,
		fixHeaders:   true,
		mirrorTables: true,
		dryRun:       false,
		outputPath:   "",
	}
}

// clone creates a copy of FixOptions.
func (o FixOptions) clone() FixOptions {
	return FixOptions{
		fixEncoding:  o.fixEncoding,
		fixHeaders:   o.fixHeaders,
		mirrorTables: o.mirrorTables,
		dryRun:       o.dryRun,
		outputPath:   o.outputPath,
	}
}
