// Package runner drives one mtlsort run over an OBJ/MTL file pair: it reads
// both inputs, rewrites them, and commits the results to disk.
package runner

import (
	"path/filepath"

	"github.com/yaklabco/mtlsort/pkg/fsutil"
)

// Options controls a single run.
type Options struct {
	// GeometryPath is the OBJ file to read.
	GeometryPath string

	// MaterialPath is the MTL file to read.
	MaterialPath string

	// GeometryOut is where the rewritten OBJ goes. Empty means in place.
	GeometryOut string

	// MaterialOut is where the rewritten MTL goes. Empty means in place.
	MaterialOut string

	// DryRun computes the result and diffs without writing anything.
	DryRun bool

	// Diff requests unified diffs in the result even when writing.
	Diff bool

	// Backups configures backups of files about to be replaced.
	Backups fsutil.BackupConfig
}

// GeometryTarget returns the path the rewritten OBJ is written to.
func (o Options) GeometryTarget() string {
	if o.GeometryOut != "" {
		return o.GeometryOut
	}
	return o.GeometryPath
}

// MaterialTarget returns the path the rewritten MTL is written to.
func (o Options) MaterialTarget() string {
	if o.MaterialOut != "" {
		return o.MaterialOut
	}
	return o.MaterialPath
}

// samePath reports whether two paths name the same location after cleaning.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
