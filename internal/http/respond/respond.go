// Package respond writes JSON responses and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/billbook/internal/auth"
	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/customer"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
	"github.com/MrJamesThe3rd/billbook/internal/profile"
)

type errorResponse struct {
	Error     string                `json:"error"`
	Fields    []document.FieldError `json:"fields,omitempty"`
	ProductID *uuid.UUID            `json:"product_id,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

// BadRequest reports a malformed request the handler rejected itself.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	JSON(w, r, http.StatusBadRequest, errorResponse{Error: msg})
}

// Error maps err to a status and a client-safe body. Server-side failures are
// logged with the request's logger and reported generically.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)

	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}

	JSON(w, r, status, body)
}

func classify(err error) (int, errorResponse) {
	var (
		validationErr *document.ValidationError
		stockErr      *document.StockError
		saveErr       *document.SaveError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: validationErr.Fields}
	case errors.As(err, &stockErr):
		return http.StatusConflict, errorResponse{Error: stockErr.Error(), ProductID: &stockErr.ProductID}
	case errors.As(err, &saveErr):
		return http.StatusInternalServerError, errorResponse{Error: "could not save the document, please try again"}
	case errors.Is(err, document.ErrShareExpired):
		return http.StatusGone, errorResponse{Error: "this link has expired"}
	case errors.Is(err, document.ErrShareNotFound):
		return http.StatusNotFound, errorResponse{Error: "this document is not available"}
	case errors.Is(err, document.ErrNotFound),
		errors.Is(err, document.ErrTemplateNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, profile.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, catalog.ErrDuplicateCode),
		errors.Is(err, document.ErrDuplicateTemplate),
		errors.Is(err, document.ErrBuiltinTemplate),
		errors.Is(err, customer.ErrDuplicate),
		errors.Is(err, catalog.ErrInsufficientStock):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, document.ErrNotShareable),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, catalog.ErrInvalidAdjustment),
		errors.Is(err, customer.ErrInvalid),
		errors.Is(err, profile.ErrInvalid),
		errors.Is(err, importer.ErrNoProfile):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal error"}
	}
}

// Owner returns the authenticated owner, answering 401 when there is none.
func Owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := auth.OwnerFrom(r.Context())
	if !ok {
		JSON(w, r, http.StatusUnauthorized, errorResponse{Error: http.StatusText(http.StatusUnauthorized)})
		return uuid.Nil, false
	}

	return ownerID, true
}

// PathID parses the {id} URL parameter, answering 400 when it is not a UUID.
func PathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		BadRequest(w, r, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

// DateParam parses an optional YYYY-MM-DD query parameter.
func DateParam(r *http.Request, key string) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD", key)
	}

	return &t, nil
}
