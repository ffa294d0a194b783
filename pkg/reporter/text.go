package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mtlsort/internal/ui/pretty"
	"github.com/yaklabco/mtlsort/pkg/runner"
)

// TextReporter writes one line per file followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, outcome := range result.Files() {
		outcome.Path = displayPath(outcome.Path, r.opts.WorkingDir)
		outcome.Target = displayPath(outcome.Target, r.opts.WorkingDir)
		fmt.Fprint(r.bw, r.styles.FormatOutcome(outcome, result.DryRun))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.DryRun))
	}

	return changedFiles(result), nil
}
