// ABOUTME: Error types reported by the repository.
// ABOUTME: Distinguishes load failures from persist failures.

package repository

import (
	"errors"
	"fmt"
)

// ErrNoMutableStore is returned by Add when only read-only sources exist.
var ErrNoMutableStore = errors.New("no mutable store configured")

// LoadError reports a source that could not be read or decoded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading materials from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PersistError reports a failed write to the mutable store.
type PersistError struct {
	Store string
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to add material to %s: %v", e.Store, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// ErrPrefixTooShort is returned by Find for prefixes under six characters.
var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")

// ErrNotFound is returned by Find when no material matches.
var ErrNotFound = errors.New("material not found")

// ErrAmbiguousPrefix is returned by Find when several materials match.
var ErrAmbiguousPrefix = errors.New("prefix matches multiple materials")
