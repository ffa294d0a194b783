// Package diff renders line-based unified diffs of a rewritten file against
// its original content.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// maxLCSCells bounds the LCS table. A changed region larger than this is
// shown as a plain removal followed by an addition.
const maxLCSCells = 4_000_000

// Diff is a unified diff between two versions of one file.
type Diff struct {
	// Path is the file path shown in the headers.
	Path string

	// Hunks contains the changed regions with context.
	Hunks []Hunk

	// Additions is the number of added lines.
	Additions int

	// Deletions is the number of removed lines.
	Deletions int
}

// Hunk is one "@@" section of a unified diff.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Line is one line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind indicates whether a line is context, added or removed.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line only present in the modified version.
	LineAdd

	// LineRemove is a line only present in the original version.
	LineRemove
)

// Generate computes the diff between original and modified.
// It returns nil when the contents are equal.
func Generate(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := compare(origLines, modLines)
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	result := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				result.Additions++
			case LineRemove:
				result.Deletions++
			case LineContext:
			}
		}
	}

	return result
}

// HasChanges returns true if the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.String())
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// String returns the line with its diff prefix.
func (l Line) String() string {
	switch l.Kind {
	case LineAdd:
		return "+" + l.Content
	case LineRemove:
		return "-" + l.Content
	default:
		return " " + l.Content
	}
}

// splitLines splits on LF and drops a trailing CR so CRLF files compare by
// content. The empty string after a final newline is not a line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

type op struct {
	kind    LineKind
	content string
}

// compare trims the common prefix and suffix, then diffs the middle.
func compare(orig, mod []string) []op {
	prefix := 0
	for prefix < len(orig) && prefix < len(mod) && orig[prefix] == mod[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(orig)-prefix && suffix < len(mod)-prefix &&
		orig[len(orig)-1-suffix] == mod[len(mod)-1-suffix] {
		suffix++
	}

	ops := make([]op, 0, len(orig)+len(mod)-prefix-suffix)
	for _, line := range orig[:prefix] {
		ops = append(ops, op{kind: LineContext, content: line})
	}

	ops = append(ops, diffMiddle(orig[prefix:len(orig)-suffix], mod[prefix:len(mod)-suffix])...)

	for _, line := range orig[len(orig)-suffix:] {
		ops = append(ops, op{kind: LineContext, content: line})
	}

	return ops
}

func diffMiddle(orig, mod []string) []op {
	if len(orig)*len(mod) > maxLCSCells {
		ops := make([]op, 0, len(orig)+len(mod))
		for _, line := range orig {
			ops = append(ops, op{kind: LineRemove, content: line})
		}
		for _, line := range mod {
			ops = append(ops, op{kind: LineAdd, content: line})
		}
		return ops
	}

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, len(orig)+1)
	for idx := range lcs {
		lcs[idx] = make([]int, len(mod)+1)
	}
	for row := len(orig) - 1; row >= 0; row-- {
		for col := len(mod) - 1; col >= 0; col-- {
			if orig[row] == mod[col] {
				lcs[row][col] = lcs[row+1][col+1] + 1
			} else {
				lcs[row][col] = max(lcs[row+1][col], lcs[row][col+1])
			}
		}
	}

	var ops []op
	row, col := 0, 0
	for row < len(orig) || col < len(mod) {
		switch {
		case row < len(orig) && col < len(mod) && orig[row] == mod[col]:
			ops = append(ops, op{kind: LineContext, content: orig[row]})
			row++
			col++
		case col >= len(mod) || (row < len(orig) && lcs[row+1][col] >= lcs[row][col+1]):
			ops = append(ops, op{kind: LineRemove, content: orig[row]})
			row++
		default:
			ops = append(ops, op{kind: LineAdd, content: mod[col]})
			col++
		}
	}

	return ops
}

// groupIntoHunks collects changes into hunks, merging changes separated by
// at most 2*contextLines unchanged lines.
func groupIntoHunks(ops []op) []Hunk {
	var hunks []Hunk

	for idx := 0; idx < len(ops); {
		if ops[idx].kind == LineContext {
			idx++
			continue
		}

		start := max(idx-contextLines, 0)
		end := idx
		for end < len(ops) {
			if ops[end].kind != LineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == LineContext {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(end+contextLines, len(ops))

		hunks = append(hunks, buildHunk(ops, start, stop))
		idx = stop
	}

	return hunks
}

func buildHunk(ops []op, start, stop int) Hunk {
	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, o := range ops[:start] {
		if o.kind != LineAdd {
			hunk.OriginalStart++
		}
		if o.kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, o := range ops[start:stop] {
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Content: o.content})
		switch o.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}
