package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mtlsort/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version   string        `json:"version"`
	DryRun    bool          `json:"dryRun"`
	Files     []JSONFile    `json:"files"`
	Materials []JSONMapping `json:"materials"`
	Dropped   []string      `json:"dropped"`
	Summary   JSONSummary   `json:"summary"`
}

// JSONFile describes one file outcome.
type JSONFile struct {
	Path          string `json:"path"`
	Target        string `json:"target"`
	OriginalSize  int    `json:"originalSize"`
	NewSize       int    `json:"newSize"`
	Changed       bool   `json:"changed"`
	Written       bool   `json:"written"`
	BackupCreated bool   `json:"backupCreated,omitempty"`
	Diff          string `json:"diff,omitempty"`
}

// JSONMapping is one usage and the declaration it was renamed from.
type JSONMapping struct {
	Index   int    `json:"index"`
	Line    int    `json:"line"`
	Source  string `json:"source"`
	NewName string `json:"newName"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Usages          int `json:"usages"`
	DeclarationsIn  int `json:"declarationsIn"`
	DeclarationsOut int `json:"declarationsOut"`
	Duplicated      int `json:"duplicated"`
	Unused          int `json:"unused"`
	FilesWritten    int `json:"filesWritten"`
	BackupsCreated  int `json:"backupsCreated"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return changedFiles(result), nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:   jsonSchemaVersion,
		Files:     make([]JSONFile, 0, 2),
		Materials: make([]JSONMapping, 0),
		Dropped:   make([]string, 0),
	}

	if result == nil {
		return output
	}

	output.DryRun = result.DryRun
	output.Summary = JSONSummary(result.Stats)

	for _, outcome := range result.Files() {
		output.Files = append(output.Files, JSONFile{
			Path:          outcome.Path,
			Target:        outcome.Target,
			OriginalSize:  outcome.OriginalSize,
			NewSize:       outcome.NewSize,
			Changed:       outcome.Changed,
			Written:       outcome.Written,
			BackupCreated: outcome.BackupCreated,
			Diff:          outcome.Diff.String(),
		})
	}

	if result.Plan != nil {
		for idx, entry := range result.Plan.Entries {
			output.Materials = append(output.Materials, JSONMapping{
				Index:   idx,
				Line:    entry.Usage.Line,
				Source:  entry.SourceName,
				NewName: entry.NewName,
			})
		}
		output.Dropped = append(output.Dropped, result.Plan.UnusedNames()...)
	}

	return output
}
