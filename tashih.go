// Package tashih provides a fluent API for repairing Arabic DOCX and ODT
// documents: reversing Mojibake from a cp1256-as-cp1252 misread, fixing
// section header numbering displaced by bidi reordering, flagging Arabic
// paragraphs right-to-left with right alignment, and mirroring table
// columns for RTL reading order.
//
// Basic usage:
//
//	report, warnings, err := tashih.Open("document.docx").Fix()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tashih.FormatWarnings(warnings))
//	}
//
// With options:
//
//	report, _, err := tashih.Open("report.odt").
//	    WithoutTableMirror().
//	    OutputPath("report_rtl.odt").
//	    Fix()
//
// For advanced use cases, the lower-level normalize, docx, and odt
// packages are also available.
package tashih

import (
	"github.com/dlvinn/tashih/normalize"
)

// Open prepares a document for repair and returns a Fixer for fluent
// configuration. The file is not read until a terminal operation like
// Fix() runs.
//
// Example:
//
//	report, warnings, err := tashih.Open("document.docx").Fix()
func Open(filename string) *Fixer {
	return &Fixer{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustFix is a helper that wraps a call to Fix() and panics if the error
// is non-nil. It discards warnings and returns just the report.
//
// Example:
//
//	report := tashih.MustFix(tashih.Open("document.docx").Fix())
func MustFix(report *normalize.Report, _ []Warning, err error) *normalize.Report {
	if err != nil {
		panic(err)
	}
	return report
}
