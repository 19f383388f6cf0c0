package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/nionems/bachata-hub-sub002/pkg/listing"
)

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes. Store failures stay
// opaque 500s; the admin caller sees a clear failure, never a partially
// correct success.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, listing.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, listing.ErrInvalidAction),
		errors.Is(err, listing.ErrInvalidKind),
		errors.Is(err, listing.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, listing.ErrAlreadyPromoted):
		status = http.StatusConflict
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}
