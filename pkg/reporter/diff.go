package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mtlsort/internal/ui/pretty"
	"github.com/yaklabco/mtlsort/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Outcomes without a computed diff are skipped.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs, additions, deletions int

	for _, outcome := range result.Files() {
		if !outcome.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		additions += outcome.Diff.Additions
		deletions += outcome.Diff.Deletions

		fmt.Fprint(r.bw, r.styles.FormatDiff(outcome.Diff, displayPath(outcome.Path, r.opts.WorkingDir)))
		fmt.Fprintln(r.bw)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.styles.FormatDiffStat(filesWithDiffs, additions, deletions))
	}

	return filesWithDiffs, nil
}

// displayPath converts an absolute path to one relative to workDir (or the
// process working directory). If the relative path would climb more than two
// levels, the base name is used instead.
func displayPath(path, workDir string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		workDir = cwd
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
