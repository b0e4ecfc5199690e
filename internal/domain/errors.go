package domain

import "errors"

// Sentinel errors shared across the ingestion pipeline. Each layer
// wraps one of these with context via fmt.Errorf("...: %w", ...) so
// callers can still errors.Is against the kind.
var (
	// ErrUnsupported means the Probe could not open the container at
	// all (unknown/unhandled format).
	ErrUnsupported = errors.New("unsupported format")

	// ErrCorrupt means the container opened but tags or streams could
	// not be decoded.
	ErrCorrupt = errors.New("corrupt metadata")

	// ErrMissingTag means a mandatory tag was absent. Never raised in
	// practice: every field has a fallback (see internal/probe).
	ErrMissingTag = errors.New("missing mandatory tag")

	// ErrInternal covers blocking-task join failures, poisoned shared
	// state, and other conditions that are bugs rather than bad input.
	ErrInternal = errors.New("internal error")

	// ErrNotFound marks a lookup with no match. The Store's Find*
	// methods do not return it: they report absence as (nil, nil).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidConfig covers TOML parse/validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
)
