package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileMode is the permission mode for files that did not exist before.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic writes content to path through a temp file in the same
// directory followed by a rename. On error the destination is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := checkContext(ctx, "write atomic"); err != nil {
		return err
	}

	tmpPath, err := stage(path, content, mode)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// stage writes content to a synced temp file next to path and returns its name.
func stage(path string, content []byte, mode os.FileMode) (string, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	success = true
	return tmpPath, nil
}

// PendingWrite is one file of a multi-file commit.
type PendingWrite struct {
	// Path is the destination.
	Path string

	// Content is the full new content.
	Content []byte

	// Mode is the permission mode; 0 means DefaultFileMode.
	Mode os.FileMode
}

// CommitError reports a commit that failed after some destinations were
// already replaced.
type CommitError struct {
	// Committed lists the destinations that hold their new content.
	Committed []string

	// Err is the underlying failure.
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed after replacing %s: %v", strings.Join(e.Committed, ", "), e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// CommitAll replaces several files together. Every temp file is written and
// synced before the first rename, so a failure while staging leaves all
// destinations untouched. Writes whose content equals the current file are
// skipped. The returned slice lists the paths that were written.
//
// A rename failing after earlier renames succeeded returns a *CommitError.
func CommitAll(ctx context.Context, writes []PendingWrite) ([]string, error) {
	if err := checkContext(ctx, "commit"); err != nil {
		return nil, err
	}

	type staged struct {
		tmpPath string
		path    string
	}

	var pending []staged
	cleanup := func() {
		for _, s := range pending {
			_ = os.Remove(s.tmpPath)
		}
	}

	for _, write := range writes {
		existing, err := os.ReadFile(write.Path)
		if err == nil && bytes.Equal(existing, write.Content) {
			continue
		}
		if err != nil && !os.IsNotExist(err) {
			cleanup()
			return nil, fmt.Errorf("read existing %s: %w", write.Path, err)
		}

		tmpPath, err := stage(write.Path, write.Content, write.Mode)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("stage %s: %w", write.Path, err)
		}
		pending = append(pending, staged{tmpPath: tmpPath, path: write.Path})
	}

	written := make([]string, 0, len(pending))
	for idx, s := range pending {
		if err := os.Rename(s.tmpPath, s.path); err != nil {
			pending = pending[idx:]
			cleanup()
			err = fmt.Errorf("rename temp file for %s: %w", s.path, err)
			if len(written) == 0 {
				return nil, err
			}
			return written, &CommitError{Committed: written, Err: err}
		}
		written = append(written, s.path)
	}

	return written, nil
}

// IsPartialCommit reports whether err came from a commit that replaced some
// but not all destinations.
func IsPartialCommit(err error) bool {
	var commitErr *CommitError
	return errors.As(err, &commitErr)
}
