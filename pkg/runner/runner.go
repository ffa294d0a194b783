package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/mtlsort/internal/logging"
	"github.com/yaklabco/mtlsort/pkg/diff"
	"github.com/yaklabco/mtlsort/pkg/fsutil"
	"github.com/yaklabco/mtlsort/pkg/mtl"
)

var (
	// ErrInput indicates an input file could not be read or the options name
	// an invalid file set.
	ErrInput = errors.New("input error")

	// ErrOutput indicates an output file could not be written.
	ErrOutput = errors.New("output error")

	// ErrConcurrentModification indicates an input changed on disk between
	// the read and the commit.
	ErrConcurrentModification = errors.New("input modified during processing")
)

// Runner reads, rewrites and commits one OBJ/MTL pair.
type Runner struct {
	// Rewriter performs the in-memory transformation.
	Rewriter *mtl.Rewriter
}

// New creates a Runner. A nil rewriter uses the default options.
func New(rewriter *mtl.Rewriter) *Runner {
	if rewriter == nil {
		rewriter = mtl.New(mtl.DefaultOptions())
	}
	return &Runner{Rewriter: rewriter}
}

// Run processes the file pair named by opts:
//  1. Read both inputs, recording their state.
//  2. Rewrite them in memory. A data error stops the run with nothing written.
//  3. For a dry run, compute diffs and stop.
//  4. Back up every file about to be replaced.
//  5. Re-check that neither input changed since it was read.
//  6. Replace both targets together.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	ctx = logging.WithPair(ctx, opts.GeometryPath, opts.MaterialPath)
	logger := logging.FromContext(ctx)

	geometry, geometryInfo, err := fsutil.ReadFile(ctx, opts.GeometryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	material, materialInfo, err := fsutil.ReadFile(ctx, opts.MaterialPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	logger.Debug("read inputs", logging.FieldBytes, len(geometry)+len(material))

	output, err := r.Rewriter.Rewrite(geometry, material)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Plan:     output.Plan,
		Geometry: newOutcome(opts.GeometryPath, opts.GeometryTarget(), geometry, output.Geometry),
		Material: newOutcome(opts.MaterialPath, opts.MaterialTarget(), material, output.Material),
		Stats:    newStats(output.Plan),
		DryRun:   opts.DryRun,
	}

	logger.Debug("rewrote pair",
		logging.FieldUsages, result.Stats.Usages,
		logging.FieldDeclarations, result.Stats.DeclarationsIn,
		logging.FieldDuplicated, result.Stats.Duplicated,
		logging.FieldUnused, result.Stats.Unused)

	if opts.DryRun || opts.Diff {
		result.Geometry.Diff = diff.Generate(opts.GeometryPath, geometry, output.Geometry)
		result.Material.Diff = diff.Generate(opts.MaterialPath, material, output.Material)
	}

	if opts.DryRun {
		return result, nil
	}

	if err := r.backup(ctx, opts.Backups, result); err != nil {
		return result, err
	}

	for _, info := range []*fsutil.FileInfo{geometryInfo, materialInfo} {
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrInput, err)
		}
		if modified {
			return result, fmt.Errorf("%w: %s", ErrConcurrentModification, info.Path)
		}
	}

	writes := []fsutil.PendingWrite{
		{Path: result.Geometry.Target, Content: output.Geometry, Mode: geometryInfo.Mode},
		{Path: result.Material.Target, Content: output.Material, Mode: materialInfo.Mode},
	}

	written, err := fsutil.CommitAll(ctx, writes)
	markWritten(result, written)
	result.accumulate()

	if err != nil {
		if fsutil.IsPartialCommit(err) {
			r.rollback(ctx, opts.Backups, result)
		}
		return result, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	logger.Debug("committed outputs", logging.FieldFilesWritten, result.Stats.FilesWritten)

	return result, nil
}

// validateOptions rejects file sets that cannot be processed safely.
func validateOptions(opts Options) error {
	if opts.GeometryPath == "" || opts.MaterialPath == "" {
		return fmt.Errorf("%w: both a geometry and a material file are required", ErrInput)
	}
	if samePath(opts.GeometryPath, opts.MaterialPath) {
		return fmt.Errorf("%w: geometry and material are the same file %s", ErrInput, opts.GeometryPath)
	}
	if samePath(opts.GeometryTarget(), opts.MaterialTarget()) {
		return fmt.Errorf("%w: geometry and material outputs are the same file %s", ErrOutput, opts.GeometryTarget())
	}
	if samePath(opts.GeometryTarget(), opts.MaterialPath) {
		return fmt.Errorf("%w: geometry output would overwrite the material input %s", ErrOutput, opts.MaterialPath)
	}
	if samePath(opts.MaterialTarget(), opts.GeometryPath) {
		return fmt.Errorf("%w: material output would overwrite the geometry input %s", ErrOutput, opts.GeometryPath)
	}
	return nil
}

func newOutcome(path, target string, original, rewritten []byte) FileOutcome {
	return FileOutcome{
		Path:         path,
		Target:       target,
		OriginalSize: len(original),
		NewSize:      len(rewritten),
		Changed:      !bytes.Equal(original, rewritten),
	}
}

// backup copies every target that is about to be replaced.
func (r *Runner) backup(ctx context.Context, cfg fsutil.BackupConfig, result *Result) error {
	logger := logging.FromContext(ctx)

	for _, outcome := range []*FileOutcome{&result.Geometry, &result.Material} {
		if !outcomeNeedsWrite(outcome) {
			continue
		}

		created, err := fsutil.CreateBackup(ctx, outcome.Target, cfg)
		if err != nil {
			return fmt.Errorf("%w: backup %s: %w", ErrOutput, outcome.Target, err)
		}
		outcome.BackupCreated = created

		if created {
			logger.Debug("created backup",
				logging.FieldPath, outcome.Target,
				logging.FieldBackup, fsutil.BackupPath(outcome.Target, cfg.Mode))
		}
	}
	return nil
}

// outcomeNeedsWrite reports whether the target will be replaced. An
// out-of-place target is written even when the content is unchanged.
func outcomeNeedsWrite(outcome *FileOutcome) bool {
	return outcome.Changed || !samePath(outcome.Path, outcome.Target)
}

// rollback restores targets that were replaced before a commit failed. Only
// backups made by this run are used; an older backup holds older content.
func (r *Runner) rollback(ctx context.Context, cfg fsutil.BackupConfig, result *Result) {
	logger := logging.FromContext(ctx)

	for _, outcome := range []*FileOutcome{&result.Geometry, &result.Material} {
		if !outcome.Written {
			continue
		}
		if !outcome.BackupCreated {
			logger.Warn("replaced file has no backup from this run",
				logging.FieldPath, outcome.Target)
			continue
		}

		restored, err := fsutil.RestoreBackup(ctx, outcome.Target, cfg.Mode)
		if err != nil || !restored {
			logger.Error("restore from backup failed",
				logging.FieldPath, outcome.Target,
				logging.FieldError, err)
			continue
		}
		outcome.Written = false
		result.Stats.FilesWritten--
	}
}

func markWritten(result *Result, written []string) {
	for _, outcome := range []*FileOutcome{&result.Geometry, &result.Material} {
		outcome.Written = slices.Contains(written, outcome.Target)
	}
}
