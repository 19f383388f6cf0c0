package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// PublicHandler handles the public browsing surface: listing reads served
// through the publication cache, and new submissions.
type PublicHandler struct {
	service listing.Service
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(service listing.Service) *PublicHandler {
	return &PublicHandler{service: service}
}

// Routes returns the routes for the public surface
func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{kind}", h.ListListings)
	r.Get("/{kind}/{id}", h.GetListing)
	r.Post("/{kind}", h.SubmitListing)

	return r
}

// SubmitListingRequest is the request body for a new submission
type SubmitListingRequest struct {
	Payload map[string]any `json:"payload"`
}

// ListListings returns the visible listings of one kind. The default
// audience is public (approved-only, cache-served); ?audience=admin bypasses
// both the filter and the cache.
func (h *PublicHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	kindStr := chi.URLParam(r, "kind")
	kind, ok := listing.ParseKind(kindStr)
	if !ok {
		slog.Error("Invalid listing kind", "kind", kindStr)
		writeError(w, r, listing.ErrInvalidKind)
		return
	}

	audience := listing.AudiencePublic
	if r.URL.Query().Get("audience") == string(listing.AudienceAdmin) {
		audience = listing.AudienceAdmin
	}

	listings, err := h.service.ListForAudience(r.Context(), kind, audience)
	if err != nil {
		slog.Error("Failed to list listings", "kind", kind, "audience", audience, "error", err)
		writeError(w, r, err)
		return
	}

	if listings == nil {
		listings = []*listing.Listing{}
	}
	render.JSON(w, r, listings)
}

// GetListing retrieves a single listing; public visibility rules apply.
func (h *PublicHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := listing.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, r, listing.ErrInvalidKind)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Invalid listing ID", "id", chi.URLParam(r, "id"), "error", err)
		writeError(w, r, listing.ErrNotFound)
		return
	}

	l, err := h.service.Get(r.Context(), kind, id)
	if err != nil {
		slog.Error("Failed to get listing", "kind", kind, "id", id, "error", err)
		writeError(w, r, err)
		return
	}

	if !listing.VisibleTo(l, listing.AudiencePublic) {
		writeError(w, r, listing.ErrNotFound)
		return
	}

	render.JSON(w, r, l)
}

// SubmitListing accepts a new submission. Shop submissions land in the
// staging collection; everything else enters its live collection pending.
func (h *PublicHandler) SubmitListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := listing.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, r, listing.ErrInvalidKind)
		return
	}

	var req SubmitListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Invalid request body", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		l   *listing.Listing
		err error
	)
	if kind == listing.KindShop {
		l, err = h.service.SubmitShop(r.Context(), listing.SubmitShopRequest{Payload: req.Payload})
	} else {
		l, err = h.service.Submit(r.Context(), listing.SubmitRequest{Kind: kind, Payload: req.Payload})
	}
	if err != nil {
		slog.Error("Failed to submit listing", "kind", kind, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Listing submitted", "kind", kind, "id", l.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, l)
}
