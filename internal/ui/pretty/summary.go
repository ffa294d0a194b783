package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mtlsort/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// plural returns singular when n is 1 and plural otherwise.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 usages from 3 declarations, 1 duplicated, 1 dropped, 2 files written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.Usages == 0 {
		return s.Success.Render("No material usages found") +
			s.Dim.Render(fmt.Sprintf(" (%d declarations dropped)", stats.DeclarationsIn)) + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s from %d %s",
			stats.Usages, plural(stats.Usages, "usage", "usages"),
			stats.DeclarationsIn, plural(stats.DeclarationsIn, "declaration", "declarations")),
	}

	if stats.Duplicated > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d duplicated", stats.Duplicated)))
	}
	if stats.Unused > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d dropped", stats.Unused)))
	}

	switch {
	case dryRun:
		parts = append(parts, s.Dim.Render("dry run, nothing written"))
	case stats.FilesWritten == 0:
		parts = append(parts, s.Success.Render("already sorted"))
	default:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s written",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	writeValue := func(label string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + s.SummaryValue.Render(strconv.Itoa(value)) + "\n")
	}

	writeValue("Usages", stats.Usages)
	writeValue("Declarations in", stats.DeclarationsIn)
	writeValue("Declarations out", stats.DeclarationsOut)

	if stats.Duplicated > 0 {
		builder.WriteString(fmt.Sprintf("  %-19s", "Duplicated:") + s.Warning.Render(strconv.Itoa(stats.Duplicated)) + "\n")
	}
	if stats.Unused > 0 {
		builder.WriteString(fmt.Sprintf("  %-19s", "Dropped:") + s.Dim.Render(strconv.Itoa(stats.Unused)) + "\n")
	}

	builder.WriteString("\n")
	writeValue("Files written", stats.FilesWritten)
	if stats.BackupsCreated > 0 {
		writeValue("Backups created", stats.BackupsCreated)
	}
	builder.WriteString("\n")

	switch {
	case dryRun:
		builder.WriteString(s.Dim.Render("Dry run: no files were changed"))
	case stats.FilesWritten == 0:
		builder.WriteString(s.Success.Render("Files already sorted"))
	default:
		builder.WriteString(s.Success.Render("Sort complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatOutcome formats one file outcome as a single line, for example
// "scene.obj  written  1204 -> 1210 bytes (backup created)".
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, dryRun bool) string {
	path := outcome.Path
	if outcome.Target != "" && outcome.Target != outcome.Path {
		path += " -> " + outcome.Target
	}

	var status string
	switch {
	case outcome.Written:
		status = s.Success.Render("written")
	case dryRun && outcome.Changed:
		status = s.Warning.Render("would change")
	case outcome.Changed:
		status = s.Failure.Render("not written")
	default:
		status = s.Dim.Render("unchanged")
	}

	line := fmt.Sprintf("%s  %s  %s", s.FilePath.Render(path), status,
		s.Dim.Render(fmt.Sprintf("%d -> %d bytes", outcome.OriginalSize, outcome.NewSize)))
	if outcome.BackupCreated {
		line += s.Dim.Render(" (backup created)")
	}
	return line + "\n"
}
