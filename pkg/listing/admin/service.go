package admin

import (
	"context"
	"time"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// AdminService defines administrative read operations over the directory
// collections. These bypass the visibility filter and the publication
// cache.
//
// IMPORTANT: Endpoints using this service should be protected with
// appropriate authentication and authorization middleware.
type AdminService interface {
	// ListListings returns listings of one kind with optional status
	// filtering, unfiltered by audience.
	ListListings(ctx context.Context, req ListListingsRequest) (*ListListingsResponse, error)

	// GetStatistics returns per-kind counts broken down by moderation
	// status, for monitoring the review backlog.
	GetStatistics(ctx context.Context, req StatisticsRequest) (*StatisticsResponse, error)
}

// Option configures the admin service.
type Option func(*adminService)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *adminService) {
		s.now = now
	}
}

// New creates a new AdminService instance that reads from the provided store.
func New(store listing.Store, opts ...Option) AdminService {
	s := &adminService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
