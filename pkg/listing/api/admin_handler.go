package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
	"github.com/nionems/bachata-hub-sub002/pkg/listing/admin"
)

// AdminHandler handles the moderation surface: the aggregated pending
// queue, review actions, generic updates and hard deletes.
type AdminHandler struct {
	service listing.Service
	admin   admin.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service listing.Service, adminService admin.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
		admin:   adminService,
	}
}

// Routes returns the routes for the admin surface
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/pending", h.PendingQueue)
	r.Get("/statistics", h.Statistics)

	r.Get("/{kind}", h.ListListings)
	r.Post("/{kind}/{id}/review", h.Review)
	r.Put("/{kind}/{id}", h.UpdateListing)
	r.Delete("/{kind}/{id}", h.DeleteListing)

	return r
}

// ReviewActionRequest is the request body for an approve/reject action
type ReviewActionRequest struct {
	Action   string `json:"action"`
	Reviewer string `json:"reviewer,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Staging  bool   `json:"staging,omitempty"`
}

// UpdateListingRequest is the request body for a generic field update
type UpdateListingRequest struct {
	Fields map[string]any `json:"fields"`
	Status *string        `json:"status,omitempty"`
}

// PendingQueue returns the merged, chronologically ordered submission queue.
func (h *AdminHandler) PendingQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.service.PendingQueue(r.Context())
	if err != nil {
		slog.Error("Failed to build pending queue", "error", err)
		writeError(w, r, err)
		return
	}

	if queue == nil {
		queue = []listing.PendingItem{}
	}
	slog.Info("Pending queue built", "count", len(queue))
	render.JSON(w, r, queue)
}

// Statistics returns per-kind moderation counts.
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.GetStatistics(r.Context(), admin.StatisticsRequest{
		IncludeStaging: r.URL.Query().Get("staging") != "false",
	})
	if err != nil {
		slog.Error("Failed to compute statistics", "error", err)
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// ListListings returns unfiltered listings of one kind, optionally narrowed
// by ?status= values.
func (h *AdminHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	kind, ok := listing.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, r, listing.ErrInvalidKind)
		return
	}

	var statuses []listing.Status
	for _, s := range r.URL.Query()["status"] {
		statuses = append(statuses, listing.Status(s))
	}

	resp, err := h.admin.ListListings(r.Context(), admin.ListListingsRequest{
		Kind:     kind,
		Statuses: statuses,
	})
	if err != nil {
		slog.Error("Failed to list listings for admin", "kind", kind, "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, resp)
}

// Review applies an approve or reject action to one record. With
// staging=true the record is looked up in the staging collection, and a
// shop approval also promotes the submission into the live collection.
func (h *AdminHandler) Review(w http.ResponseWriter, r *http.Request) {
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

	var req ReviewActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Invalid request body", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reviewReq := listing.ReviewRequest{
		Kind:     kind,
		ID:       id,
		Reviewer: req.Reviewer,
		Notes:    req.Notes,
		Staging:  req.Staging,
	}

	var l *listing.Listing
	switch listing.ReviewAction(req.Action) {
	case listing.ActionApprove:
		l, err = h.service.Approve(r.Context(), reviewReq)
	case listing.ActionReject:
		l, err = h.service.Reject(r.Context(), reviewReq)
	default:
		writeError(w, r, listing.ErrInvalidAction)
		return
	}
	if err != nil {
		slog.Error("Review action failed", "kind", kind, "id", id, "action", req.Action, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Listing reviewed", "kind", kind, "id", id, "action", req.Action, "status", l.Status)
	render.JSON(w, r, l)
}

// UpdateListing merges fields into a record's payload and optionally
// changes its status without stamping review metadata.
func (h *AdminHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := listing.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, r, listing.ErrInvalidKind)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, listing.ErrNotFound)
		return
	}

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Invalid request body", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updateReq := listing.UpdateRequest{
		Kind:   kind,
		ID:     id,
		Fields: req.Fields,
	}
	if req.Status != nil {
		status := listing.Status(*req.Status)
		updateReq.Status = &status
	}

	l, err := h.service.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Failed to update listing", "kind", kind, "id", id, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Listing updated", "kind", kind, "id", id)
	render.JSON(w, r, l)
}

// DeleteListing removes a record outright; no lifecycle semantics.
func (h *AdminHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := listing.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, r, listing.ErrInvalidKind)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, listing.ErrNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), kind, id); err != nil {
		slog.Error("Failed to delete listing", "kind", kind, "id", id, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Listing deleted", "kind", kind, "id", id)
	w.WriteHeader(http.StatusNoContent)
}
