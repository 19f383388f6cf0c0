package listing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrNotFound indicates a listing was not found in its collection
	ErrNotFound = errors.New("listing not found")

	// ErrInvalidAction indicates an unsupported review action was requested
	ErrInvalidAction = errors.New("invalid review action")

	// ErrInvalidKind indicates an unrecognized listing kind
	ErrInvalidKind = errors.New("invalid listing kind")

	// ErrValidation indicates a submission is missing required fields
	ErrValidation = errors.New("submission validation failed")

	// ErrAlreadyPromoted indicates a staging record was already copied into
	// the live collection
	ErrAlreadyPromoted = errors.New("submission already promoted")

	// ErrStoreUnavailable indicates the underlying persistence call failed
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ListingError represents an error related to a single listing operation
type ListingError struct {
	ID   uuid.UUID
	Kind Kind
	Op   string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing operation %s failed for %s %s: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// QueueError represents a failure while building the aggregated pending
// queue. Source names the collection whose fetch failed.
type QueueError struct {
	Source string
	Err    error
}

func (e *QueueError) Error() string {
	return fmt.Sprintf("pending queue fetch failed for %s: %v", e.Source, e.Err)
}

func (e *QueueError) Unwrap() error {
	return e.Err
}
