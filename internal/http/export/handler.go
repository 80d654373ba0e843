package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/export"
	"github.com/MrJamesThe3rd/billbook/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.summary)
	r.Post("/download", h.download)
}

type exportRequest struct {
	Kind      document.Kind `json:"kind,omitempty"`
	StartDate string        `json:"start_date,omitempty"`
	EndDate   string        `json:"end_date,omitempty"`
}

type exportSummaryResponse struct {
	Documents int    `json:"documents"`
	Summary   string `json:"summary"`
}

func (req exportRequest) filter() (document.ListFilter, error) {
	var filter document.ListFilter

	switch req.Kind {
	case "":
	case document.KindInvoice, document.KindBill:
		filter.Kind = new(req.Kind)
	default:
		return filter, errors.New("kind must be invoice or bill")
	}

	var err error

	if filter.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		return filter, err
	}

	if filter.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseDate(key, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD", key)
	}

	return &t, nil
}

// decode reads the optional export request body; an empty body exports everything.
func decode(r *http.Request) (document.ListFilter, error) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return document.ListFilter{}, err
	}

	return req.filter()
}

// run exports into a temporary directory that the caller must remove.
func (h *Handler) run(r *http.Request, ownerID uuid.UUID, filter document.ListFilter) (string, []export.Item, error) {
	tmpDir, err := os.MkdirTemp("", "billbook-export-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating export directory: %w", err)
	}

	items, err := h.svc.Export(r.Context(), ownerID, filter, tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", nil, err
	}

	return tmpDir, items, nil
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	filter, err := decode(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	tmpDir, items, err := h.run(r, ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	respond.JSON(w, r, http.StatusOK, exportSummaryResponse{
		Documents: len(items),
		Summary:   h.svc.GenerateSummary(items),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	filter, err := decode(r)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	tmpDir, items, err := h.run(r, ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	summary := h.svc.GenerateSummary(items)
	if err := os.WriteFile(filepath.Join(tmpDir, export.SummaryFile), []byte(summary), 0o644); err != nil {
		respond.Error(w, r, fmt.Errorf("writing summary: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"billbook_%s.zip\"", h.now().Format("20060102")))

	if err := export.WriteArchive(w, tmpDir); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write export archive")
	}
}
