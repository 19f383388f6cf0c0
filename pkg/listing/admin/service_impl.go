package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// adminService implements the AdminService interface
type adminService struct {
	store listing.Store
	now   func() time.Time
}

// Ensure adminService implements AdminService
var _ AdminService = (*adminService)(nil)

const defaultLimit = 100

func (s *adminService) ListListings(ctx context.Context, req ListListingsRequest) (*ListListingsResponse, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", listing.ErrInvalidKind, req.Kind)
	}

	all, err := s.store.List(ctx, req.Kind.Collection())
	if err != nil {
		return nil, err
	}

	filtered := all
	if len(req.Statuses) > 0 {
		filtered = nil
		for _, l := range all {
			for _, status := range req.Statuses {
				if l.Status == status {
					filtered = append(filtered, l)
					break
				}
			}
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	page := filtered
	if offset >= len(page) {
		page = nil
	} else {
		page = page[offset:]
	}
	hasMore := len(page) > limit
	if hasMore {
		page = page[:limit]
	}

	return &ListListingsResponse{
		Listings: page,
		Limit:    limit,
		Offset:   offset,
		HasMore:  hasMore,
	}, nil
}

func (s *adminService) GetStatistics(ctx context.Context, req StatisticsRequest) (*StatisticsResponse, error) {
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = listing.Kinds()
	}

	resp := &StatisticsResponse{
		ByKind:     make(map[listing.Kind]KindStatistics, len(kinds)),
		ComputedAt: s.now().UTC(),
	}

	for _, kind := range kinds {
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: %q", listing.ErrInvalidKind, kind)
		}
		records, err := s.store.List(ctx, kind.Collection())
		if err != nil {
			return nil, err
		}
		resp.ByKind[kind] = countStatuses(records)
	}

	if req.IncludeStaging {
		records, err := s.store.List(ctx, listing.StagingCollection)
		if err != nil {
			return nil, err
		}
		stats := countStatuses(records)
		resp.Staging = &stats
	}

	return resp, nil
}

func countStatuses(records []*listing.Listing) KindStatistics {
	var stats KindStatistics
	stats.Total = len(records)
	for _, l := range records {
		switch l.Status {
		case listing.StatusPending:
			stats.Pending++
		case listing.StatusApproved:
			stats.Approved++
		case listing.StatusRejected:
			stats.Rejected++
		default:
			stats.Legacy++
		}
	}
	return stats
}
