package listing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the domain type for listing moderation states.
type Status string

// Listing status constants (typed). An empty status marks a legacy record
// created before moderation existed; it is treated as approved for
// visibility purposes.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Kind identifies which directory category a listing belongs to and which
// collection holds it.
type Kind string

// Listing kind constants (typed).
const (
	KindShop        Kind = "shop"
	KindInstructor  Kind = "instructor"
	KindSchool      Kind = "school"
	KindDJ          Kind = "dj"
	KindMedia       Kind = "media"
	KindEvent       Kind = "event"
	KindFestival    Kind = "festival"
	KindCompetition Kind = "competition"
)

// Kinds returns every live listing kind.
func Kinds() []Kind {
	return []Kind{
		KindShop, KindInstructor, KindSchool, KindDJ,
		KindMedia, KindEvent, KindFestival, KindCompetition,
	}
}

// IsValid reports whether k is a recognized listing kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindShop, KindInstructor, KindSchool, KindDJ,
		KindMedia, KindEvent, KindFestival, KindCompetition:
		return true
	default:
		return false
	}
}

// HasPublishedFlag reports whether listings of this kind carry a published
// flag. Approving such a listing also publishes it; rejecting leaves the
// flag untouched.
func (k Kind) HasPublishedFlag() bool {
	switch k {
	case KindEvent, KindFestival, KindCompetition:
		return true
	default:
		return false
	}
}

// ParseKind normalizes a URL/path segment into a Kind. Both the kind name
// and its collection name are accepted, so routes can address resources the
// way collections are named ("/shops") as well as by kind ("/shop").
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k.IsValid() {
		return k, true
	}
	for _, kind := range Kinds() {
		if string(k) == kind.Collection() {
			return kind, true
		}
	}
	return "", false
}

// StagingCollection holds not-yet-reviewed shop submissions, distinct from
// the live shops collection.
const StagingCollection = "submissions"

// Collection returns the live collection name for the kind.
func (k Kind) Collection() string {
	if k == KindMedia {
		return "media"
	}
	return string(k) + "s"
}

// Audience is the caller class that determines which records the visibility
// filter releases.
type Audience string

// Audience constants (typed).
const (
	AudiencePublic Audience = "public"
	AudienceAdmin  Audience = "admin"
)

// ReviewAction is a moderation decision applied to a pending listing.
type ReviewAction string

// Review action constants (typed).
const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// Listing is the moderated entity shared by all directory kinds. The
// moderation core only interprets the tagged fields below; everything
// kind-specific lives in Payload and is copied verbatim where needed.
type Listing struct {
	ID          uuid.UUID      `json:"id"`
	Kind        Kind           `json:"kind"`
	Status      Status         `json:"status,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	SubmittedAt time.Time      `json:"submitted_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	ReviewedBy  string         `json:"reviewed_by,omitempty"`
	ReviewNotes string         `json:"review_notes,omitempty"`
	Published   *bool          `json:"published,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// Clone returns a deep-enough copy: the payload map is copied so callers can
// mutate the result without touching cached or stored data.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	cp := *l
	if l.Payload != nil {
		cp.Payload = make(map[string]any, len(l.Payload))
		for k, v := range l.Payload {
			cp.Payload[k] = v
		}
	}
	if l.ReviewedAt != nil {
		t := *l.ReviewedAt
		cp.ReviewedAt = &t
	}
	if l.Published != nil {
		b := *l.Published
		cp.Published = &b
	}
	return &cp
}

// EffectiveSubmittedAt resolves the timestamp a submission is queued and
// sorted by. Legacy records may be missing any one of the three stamps, so
// the chain is created, submitted, updated; a fully unstamped record yields
// the zero time and sorts oldest.
func (l *Listing) EffectiveSubmittedAt() time.Time {
	if !l.CreatedAt.IsZero() {
		return l.CreatedAt
	}
	if !l.SubmittedAt.IsZero() {
		return l.SubmittedAt
	}
	return l.UpdatedAt
}

// PendingItem is the normalized projection used only for the aggregated
// admin queue. It is rebuilt on every request and never persisted. Staging
// marks items sourced from the staging collection; review requests for
// those must carry the staging flag to find the record.
type PendingItem struct {
	ID          uuid.UUID `json:"id"`
	Type        Kind      `json:"type"`
	Staging     bool      `json:"staging,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Listing     *Listing  `json:"listing"`
}
