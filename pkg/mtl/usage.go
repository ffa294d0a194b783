package mtl

import "bytes"

// DefaultMaxNameLength is the longest usage name accepted by default.
const DefaultMaxNameLength = 1023

// Usage is one "usemtl" line in the geometry text.
type Usage struct {
	// Index is the position of the usage among all usages, starting at 0.
	Index int

	// Offset is the byte offset of the usage keyword.
	Offset int

	// Line is the 1-based line number.
	Line int

	// Name is the referenced material name.
	Name string
}

type lineKind int

const (
	lineOther lineKind = iota
	lineComment
	lineUsage
)

// classifyLine is the single place that decides what a geometry line is, so
// that scanning and rewriting always agree. Comment lines never count as
// usages, even when they mention the keyword.
func classifyLine(content []byte) lineKind {
	trimmed := bytes.TrimLeft(content, " \t")
	switch {
	case len(trimmed) > 0 && trimmed[0] == '#':
		return lineComment
	case hasKeyword(trimmed, UsageKeyword):
		return lineUsage
	default:
		return lineOther
	}
}

func hasKeyword(content []byte, keyword string) bool {
	if !bytes.HasPrefix(content, []byte(keyword)) {
		return false
	}
	rest := content[len(keyword):]
	return len(rest) == 0 || isSpace(rest[0])
}

// ScanUsages returns every usage line of geometry in order. A name longer
// than maxNameLength bytes yields a *NameOverflowError; a non-positive
// maxNameLength means DefaultMaxNameLength.
func ScanUsages(geometry []byte, maxNameLength int) ([]Usage, error) {
	if maxNameLength <= 0 {
		maxNameLength = DefaultMaxNameLength
	}

	var usages []Usage
	for lineIdx, line := range Lines(geometry) {
		content := line.Content(geometry)
		if classifyLine(content) != lineUsage {
			continue
		}

		keywordAt := bytes.Index(content, []byte(UsageKeyword))
		name := trimRightSpace(trimLeftSpace(content[keywordAt+len(UsageKeyword):]))
		if len(name) > maxNameLength {
			return nil, &NameOverflowError{
				Line:   lineIdx + 1,
				Length: len(name),
				Limit:  maxNameLength,
			}
		}

		usages = append(usages, Usage{
			Index:  len(usages),
			Offset: line.Start + keywordAt,
			Line:   lineIdx + 1,
			Name:   string(name),
		})
	}

	return usages, nil
}
