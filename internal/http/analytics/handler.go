package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billbook/internal/analytics"
	"github.com/MrJamesThe3rd/billbook/internal/http/respond"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.report)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	req := analytics.Request{Bucket: analytics.Bucketing(q.Get("bucket"))}
	if req.Bucket != "" && !req.Bucket.Valid() {
		respond.BadRequest(w, r, "bucket must be day, week or month")
		return
	}

	if s := q.Get("top"); s != "" {
		top, err := strconv.Atoi(s)
		if err != nil || top < 1 {
			respond.BadRequest(w, r, "top must be a positive number")
			return
		}

		req.Top = top
	}

	var err error

	if req.StartDate, err = respond.DateParam(r, "start_date"); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	if req.EndDate, err = respond.DateParam(r, "end_date"); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	report, err := h.svc.Report(r.Context(), ownerID, req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, report)
}
