package mtl

// PlanEntry pairs one usage with the declaration it resolved to.
type PlanEntry struct {
	// Usage is the usage line this entry was created for.
	Usage Usage

	// Declaration is the index into Plan.Declarations.
	Declaration int

	// SourceName is the original name of the matched declaration.
	SourceName string

	// NewName is the synthesized name shared by the rewritten usage and the
	// emitted declaration.
	NewName string
}

// Plan is the renaming and duplication plan for one OBJ/MTL pair. Entry N
// becomes the N-th declaration of the rewritten material text.
type Plan struct {
	Entries      []PlanEntry
	Declarations Declarations

	// Names holds the name of each declaration, parallel to Declarations.
	Names []string
}

// Len returns the number of entries, which is also the number of declarations
// in the rewritten material text.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// References returns, per original declaration, how many usages resolved to it.
func (p *Plan) References() []int {
	if p == nil {
		return nil
	}
	counts := make([]int, len(p.Declarations))
	for _, entry := range p.Entries {
		counts[entry.Declaration]++
	}
	return counts
}

// Duplicated returns the number of declarations referenced more than once.
func (p *Plan) Duplicated() int {
	var n int
	for _, count := range p.References() {
		if count > 1 {
			n++
		}
	}
	return n
}

// Unused returns the number of declarations no usage resolved to. They are
// dropped from the rewritten material text.
func (p *Plan) Unused() int {
	var n int
	for _, count := range p.References() {
		if count == 0 {
			n++
		}
	}
	return n
}

// UnusedNames returns the names of the declarations no usage resolved to, in
// material order.
func (p *Plan) UnusedNames() []string {
	var names []string
	for idx, count := range p.References() {
		if count == 0 && idx < len(p.Names) {
			names = append(names, p.Names[idx])
		}
	}
	return names
}
