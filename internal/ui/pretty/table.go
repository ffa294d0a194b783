package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mtlsort/pkg/mtl"
)

// Table formatting constants.
const (
	duplicateSymbol      = "+"
	tablePadding         = 2
	tableColumnCount     = 4 // #, LINE, MATERIAL, NEW NAME
	duplicateColumnWidth = 2
	minIndexWidth        = 3
	minLineWidth         = 6
	minSourceWidth       = 20
	minNewNameWidth      = 10
	heavySeparator       = "="
	lightSeparator       = "-"
)

// PlanRow is one row of the plan table.
type PlanRow struct {
	Index      int
	Line       int
	SourceName string
	NewName    string

	// Duplicate is true if an earlier row already emitted the same declaration.
	Duplicate bool
}

// PlanFormatter formats a renaming plan as a styled table.
type PlanFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewPlanFormatter creates a new plan formatter.
func NewPlanFormatter(styles *Styles, colorEnabled bool, termWidth int) *PlanFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &PlanFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// PlanRows converts a plan into table rows in usage order.
func PlanRows(plan *mtl.Plan) []PlanRow {
	if plan.Len() == 0 {
		return nil
	}

	seen := make(map[int]bool, len(plan.Declarations))
	rows := make([]PlanRow, 0, plan.Len())
	for idx, entry := range plan.Entries {
		rows = append(rows, PlanRow{
			Index:      idx,
			Line:       entry.Usage.Line,
			SourceName: entry.SourceName,
			NewName:    entry.NewName,
			Duplicate:  seen[entry.Declaration],
		})
		seen[entry.Declaration] = true
	}
	return rows
}

// FormatPlan formats the plan as a table followed by a legend and the list
// of declarations the rewrite drops.
func (p *PlanFormatter) FormatPlan(plan *mtl.Plan) string {
	rows := PlanRows(plan)
	if len(rows) == 0 {
		return p.styles.Dim.Render("No material usages found.") + "\n"
	}

	widths := p.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(p.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(p.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(p.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(p.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	if unused := plan.UnusedNames(); len(unused) > 0 {
		builder.WriteString(p.styles.Dim.Render(" dropped: " + strings.Join(unused, ", ")))
		builder.WriteString("\n")
	}

	builder.WriteString(p.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	index   int
	line    int
	source  int
	newName int
}

// calculateColumnWidths determines column widths based on content.
func (p *PlanFormatter) calculateColumnWidths(rows []PlanRow) columnWidths {
	widths := columnWidths{
		index:   minIndexWidth,
		line:    minLineWidth,
		source:  minSourceWidth,
		newName: minNewNameWidth,
	}

	for _, row := range rows {
		widths.index = max(widths.index, len(strconv.Itoa(row.Index)))
		widths.line = max(widths.line, len(strconv.Itoa(row.Line)))
		widths.source = max(widths.source, len(row.SourceName))
		widths.newName = max(widths.newName, len(row.NewName))
	}

	// Constrain to terminal width by shrinking the source name column.
	if total := p.calculateTotalWidth(widths); total > p.termWidth {
		widths.source = max(minSourceWidth, widths.source-(total-p.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (p *PlanFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.index + widths.line + widths.source + widths.newName +
		(tablePadding * tableColumnCount) + duplicateColumnWidth
}

// formatHeader formats the table header row.
func (p *PlanFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %*s  %*s  %-*s  %-*s   ",
		widths.index, "#",
		widths.line, "LINE",
		widths.source, "MATERIAL",
		widths.newName, "NEW NAME",
	)
	return p.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (p *PlanFormatter) formatSeparator(widths columnWidths, char string) string {
	return p.styles.TableSeparator.Render(strings.Repeat(char, p.calculateTotalWidth(widths)))
}

// formatRow formats a single plan row.
func (p *PlanFormatter) formatRow(row PlanRow, widths columnWidths) string {
	marker := " "
	if row.Duplicate {
		marker = duplicateSymbol
	}

	content := fmt.Sprintf(" %*d  %*d  %-*s  %-*s  %s",
		widths.index, row.Index,
		widths.line, row.Line,
		widths.source, truncateString(row.SourceName, widths.source),
		widths.newName, row.NewName,
		marker,
	)

	if row.Duplicate {
		return p.styles.TableDuplicate.Render(content)
	}
	return content
}

// formatLegend formats the legend explaining the table symbols.
func (p *PlanFormatter) formatLegend() string {
	symbol := duplicateSymbol
	if p.colorEnabled {
		symbol = p.styles.TableDuplicate.Render(duplicateSymbol)
	}
	return p.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = copy of a declaration already emitted", symbol),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
