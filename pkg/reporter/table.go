package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mtlsort/internal/ui/pretty"
	"github.com/yaklabco/mtlsort/pkg/runner"
)

// TableReporter writes the renaming plan as a table followed by a summary block.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.PlanFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewPlanFormatter(styles, colorEnabled, pretty.TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render(displayPath(result.Geometry.Path, r.opts.WorkingDir)+
		" + "+displayPath(result.Material.Path, r.opts.WorkingDir)))
	fmt.Fprint(r.bw, r.formatter.FormatPlan(result.Plan))

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, result.DryRun))
	}

	return changedFiles(result), nil
}
