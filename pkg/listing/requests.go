package listing

import "github.com/google/uuid"

// Request DTOs

// SubmitRequest contains parameters for submitting a listing into a live
// collection. Submissions enter moderation as pending unless AsApproved is
// set (admin-originated creations skip review).
type SubmitRequest struct {
	Kind       Kind
	Payload    map[string]any
	AsApproved bool
}

// SubmitShopRequest contains parameters for a shop submission. Shop
// submissions land in the staging collection and only reach the live shops
// collection through promotion on approval.
type SubmitShopRequest struct {
	Payload map[string]any
}

// ReviewRequest contains parameters for an approve/reject action.
// Staging selects the staging collection instead of the kind's live one.
type ReviewRequest struct {
	Kind     Kind
	ID       uuid.UUID
	Reviewer string
	Notes    string
	Staging  bool
}

// UpdateRequest contains parameters for a generic admin field update. Fields
// are merged into the payload; Status, when non-nil, changes the moderation
// state without stamping review metadata.
type UpdateRequest struct {
	Kind   Kind
	ID     uuid.UUID
	Fields map[string]any
	Status *Status
}
