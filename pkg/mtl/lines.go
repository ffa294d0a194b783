package mtl

import "bytes"

// Line addresses one line of a text by byte offsets.
// The content is text[Start:End] and the terminator is text[End:Next].
type Line struct {
	Start int
	End   int
	Next  int
}

// Content returns the line without its terminator.
func (l Line) Content(text []byte) []byte {
	return text[l.Start:l.End]
}

// Terminator returns the line ending ("\r\n", "\n", "\r"), or nil for a final
// line without one.
func (l Line) Terminator(text []byte) []byte {
	if l.End == l.Next {
		return nil
	}
	return text[l.End:l.Next]
}

// LineEnd returns the offset of the first '\r' or '\n' at or after from.
// It returns len(text) when no line break follows.
func LineEnd(text []byte, from int) int {
	if from >= len(text) {
		return len(text)
	}
	if idx := bytes.IndexAny(text[from:], "\r\n"); idx >= 0 {
		return from + idx
	}
	return len(text)
}

// Lines splits text into lines. CRLF, LF and a lone CR each end one line, so
// a run of several line breaks yields empty lines and every byte of text
// belongs to exactly one Line.
func Lines(text []byte) []Line {
	if len(text) == 0 {
		return nil
	}

	lines := make([]Line, 0, bytes.Count(text, []byte{'\n'})+1)
	for start := 0; start < len(text); {
		end := LineEnd(text, start)
		next := end + terminatorLen(text, end)
		lines = append(lines, Line{Start: start, End: end, Next: next})
		start = next
	}

	return lines
}

func terminatorLen(text []byte, at int) int {
	switch {
	case at >= len(text):
		return 0
	case text[at] == '\r' && at+1 < len(text) && text[at+1] == '\n':
		return 2
	case text[at] == '\r', text[at] == '\n':
		return 1
	default:
		return 0
	}
}

func endsWithLineBreak(text []byte) bool {
	if len(text) == 0 {
		return false
	}
	last := text[len(text)-1]
	return last == '\n' || last == '\r'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// isSpace reports blanks and ASCII control characters, which is what separates
// a keyword from its name and a name from whatever follows it.
func isSpace(c byte) bool {
	return isBlank(c) || c < 0x20 || c == 0x7f
}

func trimLeftSpace(text []byte) []byte {
	for len(text) > 0 && isSpace(text[0]) {
		text = text[1:]
	}
	return text
}

func trimRightSpace(text []byte) []byte {
	for len(text) > 0 && isSpace(text[len(text)-1]) {
		text = text[:len(text)-1]
	}
	return text
}
