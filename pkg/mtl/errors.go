package mtl

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrUnresolvedUsage is returned when a usage names no known declaration.
	ErrUnresolvedUsage = errors.New("no matching material declaration")

	// ErrNameOverflow is returned when a usage name exceeds the configured limit.
	ErrNameOverflow = errors.New("material name too long")
)

// UnresolvedUsageError reports a usage that matches no declaration.
type UnresolvedUsageError struct {
	// Name is the material name read from the usage line.
	Name string

	// Line is the 1-based line number in the geometry text.
	Line int
}

func (e *UnresolvedUsageError) Error() string {
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, UsageKeyword, e.Name, ErrUnresolvedUsage)
}

func (e *UnresolvedUsageError) Unwrap() error {
	return ErrUnresolvedUsage
}

// NameOverflowError reports a usage name longer than the allowed maximum.
type NameOverflowError struct {
	Line   int
	Length int
	Limit  int
}

func (e *NameOverflowError) Error() string {
	return fmt.Sprintf("line %d: %v (%d bytes, limit %d)", e.Line, ErrNameOverflow, e.Length, e.Limit)
}

func (e *NameOverflowError) Unwrap() error {
	return ErrNameOverflow
}
