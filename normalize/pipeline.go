// Package normalize implements the encoding-recovery and RTL normalization
// engine: the Mojibake codec pass, numbered-header reordering, table
// mirroring, direction/alignment annotation, and the content-integrity
// guard that runs before a document is persisted.
package normalize

import (
	"fmt"
	"strings"

	"github.com/dlvinn/tashih/model"
	"github.com/dlvinn/tashih/mojibake"
	"github.com/dlvinn/tashih/script"
)

// Pipeline orchestrates the repair transforms over one document at a time.
// Construct it once per process with NewPipeline and share it: it holds
// only immutable pieces (the codec's substitution table, the classifier
// threshold) and keeps all per-document state on the stack of Run, so a
// single Pipeline may drive many documents concurrently as long as each
// document is mutated by one goroutine only.
type Pipeline struct {
	classifier *script.Classifier
	codec      *mojibake.Codec
	headers    *HeaderNormalizer
	annotator  *Annotator
	mirror     *TableMirror

	fixEncoding  bool
	fixHeaders   bool
	mirrorTables bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClassifier replaces the default script classifier, e.g. to tune the
// Arabic ratio threshold.
func WithClassifier(c *script.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithoutEncodingFix disables the Mojibake codec pass.
func WithoutEncodingFix() Option {
	return func(p *Pipeline) { p.fixEncoding = false }
}

// WithoutHeaderFix disables numbered-header reordering.
func WithoutHeaderFix() Option {
	return func(p *Pipeline) { p.fixHeaders = false }
}

// WithoutTableMirror disables table cell mirroring.
func WithoutTableMirror() Option {
	return func(p *Pipeline) { p.mirrorTables = false }
}

// NewPipeline builds a Pipeline with all transforms enabled.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier:   script.NewClassifier(),
		codec:        mojibake.New(),
		fixEncoding:  true,
		fixHeaders:   true,
		mirrorTables: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.headers = NewHeaderNormalizer(p.classifier)
	p.annotator = NewAnnotator(p.classifier)
	p.mirror = NewTableMirror(p.classifier)
	return p
}

// Codec exposes the pipeline's codec, e.g. for discovery reports.
func (p *Pipeline) Codec() *mojibake.Codec {
	return p.codec
}

// Report summarizes one document run.
type Report struct {
	Counters FixCounters
	Before   Fingerprint
	After    Fingerprint
	// Warnings holds non-fatal findings; a non-empty slice does not
	// prevent persisting the document.
	Warnings []Warning
}

// Run repairs one in-memory document: fingerprint, transform every block,
// re-fingerprint, validate. Per paragraph the order is codec, header
// reordering (Arabic paragraphs only), annotation; tables are mirrored
// before their cells are annotated. The sequence is strictly per document
// and there is no partial rollback: on error the caller discards the
// in-memory document without saving, and the on-disk original is untouched
// by construction.
func (p *Pipeline) Run(doc model.Document) (*Report, error) {
	r := &run{pipeline: p, report: &Report{}}

	r.report.Before = FingerprintOf(doc)

	for i, block := range doc.Blocks() {
		switch b := block.(type) {
		case model.Paragraph:
			r.paragraph(b)
		case model.Table:
			if err := r.table(b); err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
		}
	}

	r.report.After = FingerprintOf(doc)
	if w := CompareFingerprints(r.report.Before, r.report.After, r.expectedCharDelta); w != nil {
		r.report.Warnings = append(r.report.Warnings, *w)
	}

	return r.report, nil
}

// run holds the mutable state of one document pass.
type run struct {
	pipeline *Pipeline
	report   *Report

	// expectedCharDelta accumulates the exact rune-count change
	// introduced by counted header rewrites, so the integrity check can
	// distinguish legitimate drift from content loss.
	expectedCharDelta int
}

func (r *run) paragraph(p model.Paragraph) {
	pl := r.pipeline

	if pl.fixEncoding {
		changed := false
		for _, rn := range p.Runs() {
			text := rn.Text()
			if text == "" {
				continue
			}
			if fixed := pl.codec.Clean(text); fixed != text {
				rn.SetText(fixed)
				changed = true
			}
		}
		if changed {
			r.report.Counters.EncodingFixes++
		}
	}

	if strings.TrimSpace(p.Text()) == "" {
		return
	}

	if pl.fixHeaders && pl.classifier.IsArabic(p.Text()) {
		if delta, changed := pl.headers.Apply(p); changed {
			r.report.Counters.HeaderReorders++
			r.expectedCharDelta += delta
		}
	}

	pl.annotator.Annotate(p, &r.report.Counters)
}

func (r *run) table(t model.Table) error {
	pl := r.pipeline

	// Mirror before per-cell annotation so subsequent transforms see
	// cells in their final visual position.
	if pl.mirrorTables {
		if _, err := pl.mirror.Mirror(t, &r.report.Counters); err != nil {
			return err
		}
	}

	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			for _, p := range cell.Paragraphs() {
				r.paragraph(p)
			}
		}
	}

	return nil
}
