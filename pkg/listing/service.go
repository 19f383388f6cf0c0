package listing

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the moderation and publication pipeline for directory
// listings: submissions enter a collection pending, surface in the admin
// queue, and become publicly visible once approved.
type Service interface {
	// Submission operations
	Submit(ctx context.Context, req SubmitRequest) (*Listing, error)
	SubmitShop(ctx context.Context, req SubmitShopRequest) (*Listing, error)

	// Read operations
	Get(ctx context.Context, kind Kind, id uuid.UUID) (*Listing, error)
	ListPublic(ctx context.Context, kind Kind) ([]*Listing, error)
	ListForAudience(ctx context.Context, kind Kind, audience Audience) ([]*Listing, error)

	// Review actions
	Approve(ctx context.Context, req ReviewRequest) (*Listing, error)
	Reject(ctx context.Context, req ReviewRequest) (*Listing, error)

	// Admin mutations
	Update(ctx context.Context, req UpdateRequest) (*Listing, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error

	// PendingQueue merges pending submissions from every source collection
	// into one chronologically ordered queue.
	PendingQueue(ctx context.Context) ([]PendingItem, error)
}
