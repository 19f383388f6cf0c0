package listing

import (
	"fmt"
	"time"
)

// ReviewUpdate is the partial update a review action produces. It touches
// only moderation fields; kind-specific payload is never modified.
type ReviewUpdate struct {
	Status      Status
	UpdatedAt   time.Time
	ReviewedAt  time.Time
	ReviewedBy  string
	ReviewNotes string
	Published   *bool
}

// Transition computes the review update for applying action to a listing.
// Transitions are idempotent: re-applying an action on an already-reviewed
// record simply re-stamps the review metadata. Unknown actions fail with
// ErrInvalidAction.
func Transition(l *Listing, action ReviewAction, reviewer, notes string, now time.Time) (ReviewUpdate, error) {
	var status Status
	switch action {
	case ActionApprove:
		status = StatusApproved
	case ActionReject:
		status = StatusRejected
	default:
		return ReviewUpdate{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	if reviewer == "" {
		reviewer = "admin"
	}

	upd := ReviewUpdate{
		Status:      status,
		UpdatedAt:   now,
		ReviewedAt:  now,
		ReviewedBy:  reviewer,
		ReviewNotes: notes,
	}

	// Approving a publishable kind also publishes it; rejection leaves the
	// flag as it was.
	if action == ActionApprove && l.Kind.HasPublishedFlag() {
		published := true
		upd.Published = &published
	}

	return upd, nil
}

// Apply stamps the review update onto the listing.
func (u ReviewUpdate) Apply(l *Listing) {
	l.Status = u.Status
	l.UpdatedAt = u.UpdatedAt
	reviewedAt := u.ReviewedAt
	l.ReviewedAt = &reviewedAt
	l.ReviewedBy = u.ReviewedBy
	l.ReviewNotes = u.ReviewNotes
	if u.Published != nil {
		published := *u.Published
		l.Published = &published
	}
}
