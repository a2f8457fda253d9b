package tashih

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dlvinn/tashih/docx"
	"github.com/dlvinn/tashih/format"
	"github.com/dlvinn/tashih/model"
	"github.com/dlvinn/tashih/normalize"
	"github.com/dlvinn/tashih/odt"
)

// fixableDocument is what a format package must provide: the model view
// the pipeline mutates plus the ability to save the result.
type fixableDocument interface {
	model.Document
	Save(filename string) error
}

// Fixer provides a fluent interface for repairing a document. Each
// configuration method returns a new Fixer instance, making it safe for
// concurrent use and allowing method chaining.
type Fixer struct {
	// Source
	filename string

	// Configuration
	options FixOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Fixer with a copy of its options. This
// ensures immutability: each chain method returns a new instance.
func (f *Fixer) clone() *Fixer {
	return &Fixer{
		filename: f.filename,
		options:  f.options.clone(),
		err:      f.err,
	}
}

// ============================================================================
// Configuration Methods (chainable)
// ============================================================================

// DryRun runs the repair without writing an output file. The report and
// warnings come back as usual so callers can inspect what would change.
func (f *Fixer) DryRun() *Fixer {
	newFixer := f.clone()
	newFixer.options.dryRun = true
	return newFixer
}

// WithoutEncodingFix disables the Mojibake text repair.
func (f *Fixer) WithoutEncodingFix() *Fixer {
	newFixer := f.clone()
	newFixer.options.fixEncoding = false
	return newFixer
}

// WithoutHeaderFix disables the section header number repair.
func (f *Fixer) WithoutHeaderFix() *Fixer {
	newFixer := f.clone()
	newFixer.options.fixHeaders = false
	return newFixer
}

// WithoutTableMirror disables table column mirroring.
func (f *Fixer) WithoutTableMirror() *Fixer {
	newFixer := f.clone()
	newFixer.options.mirrorTables = false
	return newFixer
}

// OutputPath sets where the fixed document is written. Without it the
// output lands next to the input as <stem>_fixed<ext>.
func (f *Fixer) OutputPath(path string) *Fixer {
	newFixer := f.clone()
	newFixer.options.outputPath = path
	return newFixer
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Fix opens the document, runs the repair pipeline, and saves the fixed
// document. This is a terminal operation.
//
// Returns the repair report, any warnings encountered during processing,
// and an error if the repair failed. Warnings indicate non-fatal issues
// (e.g., the integrity check noticed content drift) where the repair
// completed but results deserve review.
//
// Example:
//
//	report, warnings, err := tashih.Open("document.docx").Fix()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tashih.FormatWarnings(warnings))
//	}
func (f *Fixer) Fix() (*normalize.Report, []Warning, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	if f.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	doc, err := f.openDocument()
	if err != nil {
		return nil, nil, err
	}

	report, err := f.pipeline().Run(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("repairing %s: %w", f.filename, err)
	}

	if !f.options.dryRun {
		outPath := f.options.outputPath
		if outPath == "" {
			outPath = DefaultOutputPath(f.filename)
		}
		if err := doc.Save(outPath); err != nil {
			return nil, report.Warnings, err
		}
	}

	return report, report.Warnings, nil
}

// openDocument opens the input with the format package its extension and
// content call for.
func (f *Fixer) openDocument() (fixableDocument, error) {
	switch format.Detect(f.filename) {
	case format.DOCX:
		doc, err := docx.Open(f.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open DOCX: %w", err)
		}
		return doc, nil
	case format.ODT:
		doc, err := odt.Open(f.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open ODT: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s", f.filename)
	}
}

// pipeline builds the repair pipeline from the configured options.
func (f *Fixer) pipeline() *normalize.Pipeline {
	var opts []normalize.Option
	if !f.options.fixEncoding {
		opts = append(opts, normalize.WithoutEncodingFix())
	}
	if !f.options.fixHeaders {
		opts = append(opts, normalize.WithoutHeaderFix())
	}
	if !f.options.mirrorTables {
		opts = append(opts, normalize.WithoutTableMirror())
	}
	return normalize.NewPipeline(opts...)
}

// DefaultOutputPath derives the output filename for an input path:
// report.docx becomes report_fixed.docx in the same directory.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + "_fixed" + ext
}
