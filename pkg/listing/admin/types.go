package admin

import (
	"time"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// ListListingsRequest filters an administrative listing read.
type ListListingsRequest struct {
	Kind     listing.Kind
	Statuses []listing.Status
	Limit    int
	Offset   int
}

// ListListingsResponse is a page of unfiltered listings.
type ListListingsResponse struct {
	Listings []*listing.Listing `json:"listings"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
	HasMore  bool               `json:"has_more"`
}

// StatisticsRequest selects which kinds to count. Empty means all.
type StatisticsRequest struct {
	Kinds          []listing.Kind
	IncludeStaging bool
}

// KindStatistics is the status breakdown for one collection.
type KindStatistics struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Legacy   int `json:"legacy"`
}

// StatisticsResponse aggregates moderation counts per kind.
type StatisticsResponse struct {
	ByKind     map[listing.Kind]KindStatistics `json:"by_kind"`
	Staging    *KindStatistics                 `json:"staging,omitempty"`
	ComputedAt time.Time                       `json:"computed_at"`
}
