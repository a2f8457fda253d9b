package batch

import (
	"context"
	"sync"

	"github.com/dlvinn/tashih"
	"github.com/dlvinn/tashih/normalize"
)

// Result is the outcome of repairing one document. A failed document
// carries its error here; it never aborts the rest of the batch.
type Result struct {
	Path     string
	Report   *normalize.Report
	Warnings []tashih.Warning
	Err      error
}

// Processor repairs documents concurrently, one worker per in-flight
// document. Documents never share mutable state, so workers need no
// coordination beyond the work queue.
type Processor struct {
	// Workers caps concurrent repairs. Zero or negative means 4.
	Workers int

	// Configure customizes the Fixer for each document, e.g. adding
	// DryRun() or WithoutTableMirror(). Nil leaves defaults in place.
	Configure func(*tashih.Fixer) *tashih.Fixer
}

// defaultWorkers bounds concurrency when the caller does not.
const defaultWorkers = 4

// Process repairs every path and returns one Result per path, in input
// order. Once ctx is cancelled, pending documents are not opened or
// saved; their results carry the context error.
func (p *Processor) Process(ctx context.Context, paths []string) []Result {
	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.fixOne(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// fixOne repairs a single document, honoring cancellation before any
// file is written.
func (p *Processor) fixOne(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: err}
	}

	fixer := tashih.Open(path)
	if p.Configure != nil {
		fixer = p.Configure(fixer)
	}

	report, warnings, err := fixer.Fix()
	return Result{Path: path, Report: report, Warnings: warnings, Err: err}
}
