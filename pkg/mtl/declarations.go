package mtl

import "bytes"

// Keywords recognized in the two file formats.
const (
	// DeclarationKeyword introduces a material in the MTL file.
	DeclarationKeyword = "newmtl"

	// UsageKeyword selects a material in the OBJ file.
	UsageKeyword = "usemtl"
)

// Declaration locates one "newmtl" block in the material text.
type Declaration struct {
	// Start is the offset of the declaration keyword.
	Start int

	// NameEnd is the first line break after the keyword, where the body starts.
	NameEnd int

	// End is the start of the next declaration, or the length of the text.
	End int
}

// Header returns the "newmtl <name>" text without its line break.
func (d Declaration) Header(material []byte) []byte {
	return material[d.Start:d.NameEnd]
}

// Body returns everything after the header up to the next declaration.
func (d Declaration) Body(material []byte) []byte {
	return material[d.NameEnd:d.End]
}

// Name returns the declared material name.
func (d Declaration) Name(material []byte) string {
	header := d.Header(material)
	return string(trimRightSpace(trimLeftSpace(header[len(DeclarationKeyword):])))
}

// Declarations is the ordered list of declarations in a material text.
type Declarations []Declaration

// IndexDeclarations finds every occurrence of the declaration keyword in
// material, left to right, each one exactly once. The last declaration ends
// at the end of the text.
func IndexDeclarations(material []byte) Declarations {
	keyword := []byte(DeclarationKeyword)

	var starts []int
	for from := 0; from < len(material); {
		idx := bytes.Index(material[from:], keyword)
		if idx < 0 {
			break
		}
		starts = append(starts, from+idx)
		from += idx + 1
	}

	decls := make(Declarations, len(starts))
	for i, start := range starts {
		end := len(material)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		decls[i] = Declaration{
			Start:   start,
			NameEnd: min(LineEnd(material, start), end),
			End:     end,
		}
	}

	return decls
}

// Preamble returns the text before the first declaration.
func (d Declarations) Preamble(material []byte) []byte {
	if len(d) == 0 {
		return material
	}
	return material[:d[0].Start]
}

// Resolve returns the index of the declaration a usage of name refers to.
//
// Declarations are searched from the last to the first. The first one whose
// text contains name at the end of a line wins. Trailing blanks are allowed
// before the line break, anything else is not, so "mat1" never resolves to
// "mat10" and "A" never resolves to "newmtl A B".
func (d Declarations) Resolve(material []byte, name string) (int, bool) {
	if name == "" {
		return -1, false
	}

	needle := []byte(name)
	for idx := len(d) - 1; idx >= 0; idx-- {
		if containsName(material[d[idx].Start:d[idx].End], needle) {
			return idx, true
		}
	}

	return -1, false
}

func containsName(span, name []byte) bool {
	for from := 0; from+len(name) <= len(span); {
		idx := bytes.Index(span[from:], name)
		if idx < 0 {
			return false
		}
		after := from + idx + len(name)
		for after < len(span) && isBlank(span[after]) {
			after++
		}
		if after == len(span) || span[after] == '\r' || span[after] == '\n' {
			return true
		}
		from += idx + 1
	}
	return false
}
