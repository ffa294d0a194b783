package runner

import (
	"github.com/yaklabco/mtlsort/pkg/diff"
	"github.com/yaklabco/mtlsort/pkg/mtl"
)

// FileOutcome describes what happened to one of the two files.
type FileOutcome struct {
	// Path is the input file.
	Path string

	// Target is where the rewritten content goes.
	Target string

	// OriginalSize is the input size in bytes.
	OriginalSize int

	// NewSize is the rewritten size in bytes.
	NewSize int

	// Changed is true if the rewritten content differs from the input.
	Changed bool

	// Written is true if Target was replaced.
	Written bool

	// BackupCreated is true if a backup of Target was written in this run.
	BackupCreated bool

	// Diff is the unified diff of input against output. It is only set for
	// dry runs or when Options.Diff is set, and is nil when nothing changed.
	Diff *diff.Diff
}

// Stats captures aggregate information about a run.
type Stats struct {
	// Usages is the number of usemtl lines found in the OBJ.
	Usages int

	// DeclarationsIn is the number of newmtl declarations in the input MTL.
	DeclarationsIn int

	// DeclarationsOut is the number of declarations in the rewritten MTL.
	DeclarationsOut int

	// Duplicated is the number of input declarations emitted more than once.
	Duplicated int

	// Unused is the number of input declarations no usage referenced.
	Unused int

	// FilesWritten is the number of files replaced on disk.
	FilesWritten int

	// BackupsCreated is the number of backups written.
	BackupsCreated int
}

// Result is the outcome of a run.
type Result struct {
	// Plan is the renaming plan the output was built from.
	Plan *mtl.Plan

	// Geometry is the OBJ outcome.
	Geometry FileOutcome

	// Material is the MTL outcome.
	Material FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// DryRun is true if nothing was written by design.
	DryRun bool
}

// Files returns both outcomes, OBJ first.
func (r *Result) Files() []FileOutcome {
	if r == nil {
		return nil
	}
	return []FileOutcome{r.Geometry, r.Material}
}

// Changed reports whether either file's content changed.
func (r *Result) Changed() bool {
	if r == nil {
		return false
	}
	return r.Geometry.Changed || r.Material.Changed
}

// newStats derives the plan statistics.
func newStats(plan *mtl.Plan) Stats {
	return Stats{
		Usages:          plan.Len(),
		DeclarationsIn:  len(plan.Declarations),
		DeclarationsOut: plan.Len(),
		Duplicated:      plan.Duplicated(),
		Unused:          plan.Unused(),
	}
}

// accumulate updates the stats with the final file outcomes.
func (r *Result) accumulate() {
	for _, outcome := range r.Files() {
		if outcome.Written {
			r.Stats.FilesWritten++
		}
		if outcome.BackupCreated {
			r.Stats.BackupsCreated++
		}
	}
}
