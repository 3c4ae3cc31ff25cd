package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's error taxonomy. Callers match them
// with errors.Is.
var (
	// ErrNotFound means a keyed record (type, instance, or edge) does
	// not exist where existence was required.
	ErrNotFound = errors.New("not found")

	// ErrAuthorizationDenied means the subject lacks the required
	// permission level.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrInvalidScope means a type-level operation was attempted
	// against an instance id, or vice versa (e.g. a CREATE grant on a
	// concrete instance).
	ErrInvalidScope = errors.New("invalid permission scope")

	// ErrStoreUnavailable means the persistence layer is unreachable.
	// The engine does not retry; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// PartialDeleteError reports an orchestrated delete that failed after
// some steps already committed. Result reflects everything that
// completed; the orchestrator never rolls committed steps back.
type PartialDeleteError struct {
	Step   string
	Result *DeleteResult
	Err    error
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("delete of %s/%s failed at step %q: %v",
		e.Result.EntityType, e.Result.EntityID, e.Step, e.Err)
}

func (e *PartialDeleteError) Unwrap() error {
	return e.Err
}
