package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	store     Store
	cache     Cache
	promoters map[Kind]Promoter
	logger    *slog.Logger
	now       func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithStore sets the record store for the service
func WithStore(store Store) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithCache sets the publication cache for the service
func WithCache(cache Cache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// WithLogger sets the structured logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithPromoter registers a promotion strategy for a kind, replacing the
// default. Only kinds with a registered promoter are copied from staging
// into their live collection on approval.
func WithPromoter(kind Kind, p Promoter) Option {
	return func(s *service) {
		s.promoters[kind] = p
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		promoters: map[Kind]Promoter{
			KindShop: shopPromoter{},
		},
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if s.cache == nil {
		return nil, fmt.Errorf("publication cache is required")
	}

	return s, nil
}

// Submission operations

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Listing, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}
	if err := validateSubmission(req.Payload); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	l := &Listing{
		Kind:        req.Kind,
		Status:      StatusPending,
		CreatedAt:   now,
		SubmittedAt: now,
		UpdatedAt:   now,
		Payload:     req.Payload,
	}
	if req.AsApproved {
		l.Status = StatusApproved
	}

	id, err := s.store.Insert(ctx, req.Kind.Collection(), l)
	if err != nil {
		return nil, &ListingError{Kind: req.Kind, Op: "submit", Err: err}
	}
	l.ID = id

	s.invalidate(ctx, req.Kind)
	return l, nil
}

func (s *service) SubmitShop(ctx context.Context, req SubmitShopRequest) (*Listing, error) {
	if err := validateShopSubmission(req.Payload); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	l := &Listing{
		Kind:        KindShop,
		Status:      StatusPending,
		CreatedAt:   now,
		SubmittedAt: now,
		UpdatedAt:   now,
		Payload:     req.Payload,
	}

	id, err := s.store.Insert(ctx, StagingCollection, l)
	if err != nil {
		return nil, &ListingError{Kind: KindShop, Op: "submit_staging", Err: err}
	}
	l.ID = id

	return l, nil
}

// Read operations

func (s *service) Get(ctx context.Context, kind Kind, id uuid.UUID) (*Listing, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.store.GetByID(ctx, kind.Collection(), id)
}

func (s *service) ListPublic(ctx context.Context, kind Kind) ([]*Listing, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	if cached, hit, err := s.cache.Get(ctx, kind); err != nil {
		// A broken cache degrades to a store read, never to a wrong answer.
		s.logger.Warn("publication cache read failed", "kind", kind, "error", err)
	} else if hit {
		return cached, nil
	}

	all, err := s.store.List(ctx, kind.Collection())
	if err != nil {
		return nil, err
	}
	visible := FilterForAudience(all, AudiencePublic)

	if err := s.cache.Set(ctx, kind, visible); err != nil {
		s.logger.Warn("publication cache write failed", "kind", kind, "error", err)
	}
	return visible, nil
}

func (s *service) ListForAudience(ctx context.Context, kind Kind, audience Audience) ([]*Listing, error) {
	if audience == AudienceAdmin {
		// Admin reads bypass both the cache and the filter.
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
		}
		return s.store.List(ctx, kind.Collection())
	}
	return s.ListPublic(ctx, kind)
}

// Review actions

func (s *service) Approve(ctx context.Context, req ReviewRequest) (*Listing, error) {
	return s.review(ctx, req, ActionApprove)
}

func (s *service) Reject(ctx context.Context, req ReviewRequest) (*Listing, error) {
	return s.review(ctx, req, ActionReject)
}

func (s *service) review(ctx context.Context, req ReviewRequest, action ReviewAction) (*Listing, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}

	collection := req.Kind.Collection()
	if req.Staging {
		collection = StagingCollection
	}

	l, err := s.store.GetByID(ctx, collection, req.ID)
	if err != nil {
		return nil, err
	}

	upd, err := Transition(l, action, req.Reviewer, req.Notes, s.now().UTC())
	if err != nil {
		return nil, err
	}

	// Staging approvals copy the submission into the live collection before
	// the staging record itself is marked approved. Both copies persist.
	// An already-promoted submission means an earlier approval made the live
	// copy but never finished stamping the staging record; the retry skips
	// the copy and completes the stamp.
	if req.Staging && action == ActionApprove {
		if promoter, ok := s.promoters[req.Kind]; ok {
			if _, err := promoter.Promote(ctx, s.store, l, s.now().UTC()); err != nil {
				if !errors.Is(err, ErrAlreadyPromoted) {
					return nil, &ListingError{ID: req.ID, Kind: req.Kind, Op: "promote", Err: err}
				}
				s.logger.Info("submission already promoted, completing approval",
					"kind", req.Kind, "id", req.ID)
			}
		}
	}

	upd.Apply(l)
	if err := s.store.Update(ctx, collection, l); err != nil {
		return nil, &ListingError{ID: req.ID, Kind: req.Kind, Op: string(action), Err: err}
	}

	s.invalidate(ctx, req.Kind)
	return l, nil
}

// Admin mutations

func (s *service) Update(ctx context.Context, req UpdateRequest) (*Listing, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}

	l, err := s.store.GetByID(ctx, req.Kind.Collection(), req.ID)
	if err != nil {
		return nil, err
	}

	if len(req.Fields) > 0 {
		if l.Payload == nil {
			l.Payload = make(map[string]any, len(req.Fields))
		}
		for k, v := range req.Fields {
			l.Payload[k] = v
		}
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	l.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, req.Kind.Collection(), l); err != nil {
		return nil, &ListingError{ID: req.ID, Kind: req.Kind, Op: "update", Err: err}
	}

	s.invalidate(ctx, req.Kind)
	return l, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	if err := s.store.Delete(ctx, kind.Collection(), id); err != nil {
		return &ListingError{ID: id, Kind: kind, Op: "delete", Err: err}
	}

	s.invalidate(ctx, kind)
	return nil
}

// invalidate discards the kind's cache entry after a durably committed
// mutation so the next public read observes the change. Invalidation
// failures leave a stale entry until the TTL lapses; that is logged, not
// surfaced, because the mutation itself succeeded.
func (s *service) invalidate(ctx context.Context, kind Kind) {
	if err := s.cache.Invalidate(ctx, kind); err != nil {
		s.logger.Warn("publication cache invalidation failed", "kind", kind, "error", err)
	}
}

// Validation

func validateSubmission(payload map[string]any) error {
	if name, _ := payload["name"].(string); name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

func validateShopSubmission(payload map[string]any) error {
	if err := validateSubmission(payload); err != nil {
		return err
	}
	if location, _ := payload["location"].(string); location == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	return nil
}
