package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mtlsort/pkg/diff"
)

// FormatDiff renders a diff in git style, colorized line by line. The
// displayPath replaces the diff's own path in the headers when non-empty.
func (s *Styles) FormatDiff(d *diff.Diff, displayPath string) string {
	if !d.HasChanges() {
		return ""
	}
	if displayPath == "" {
		displayPath = d.Path
	}

	var builder strings.Builder

	builder.WriteString(s.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)))
	builder.WriteString("\n")
	builder.WriteString(s.DiffRemove.Render("--- a/" + displayPath))
	builder.WriteString("\n")
	builder.WriteString(s.DiffAdd.Render("+++ b/" + displayPath))
	builder.WriteString("\n")

	for _, hunk := range d.Hunks {
		builder.WriteString(s.DiffHunk.Render(hunk.Header()))
		builder.WriteString("\n")
		for _, line := range hunk.Lines {
			builder.WriteString(s.formatDiffLine(line))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

func (s *Styles) formatDiffLine(line diff.Line) string {
	switch line.Kind {
	case diff.LineAdd:
		return s.DiffAdd.Render(line.String())
	case diff.LineRemove:
		return s.DiffRemove.Render(line.String())
	default:
		return s.DiffContext.Render(line.String())
	}
}

// FormatDiffStat formats a git-style totals line such as
// "2 files changed, 3 insertions(+), 3 deletions(-)".
func (s *Styles) FormatDiffStat(files, additions, deletions int) string {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, wordFile, wordFiles))}

	if additions > 0 {
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)",
			additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)",
			deletions, plural(deletions, "deletion", "deletions"))))
	}

	return strings.Join(parts, ", ")
}
