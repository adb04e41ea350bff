package migrate

import "errors"

// Error taxonomy of a migration run. Connectivity failures abort before any
// batch starts; everything here below is recoverable at record granularity
// (skip and count) except batch write failures, which roll back the entity
// type's transaction and surface to the caller.
var (
	// ErrUnresolvedReference marks a dependent record whose parent key was
	// never resolved (parent not migrated or filtered out).
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrDuplicateContent marks a source record rejected by the dedup filter.
	ErrDuplicateContent = errors.New("duplicate content")
)
