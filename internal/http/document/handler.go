package document

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/http/respond"
	"github.com/MrJamesThe3rd/billbook/internal/metrics"
)

type Handler struct {
	svc          *document.Service
	metrics      *metrics.Metrics
	shareBaseURL string
}

// NewHandler builds the documents handler. Share links are rendered as
// shareBaseURL + "/" + token.
func NewHandler(svc *document.Service, m *metrics.Metrics, shareBaseURL string) *Handler {
	return &Handler{
		svc:          svc,
		metrics:      m,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/totals", h.totals)
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/duplicate", h.duplicate)
	r.Post("/{id}/share", h.share)
}

// SharedRoutes serves shared invoices without authentication.
func (h *Handler) SharedRoutes(r chi.Router) {
	r.Get("/{token}", h.shared)
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	var draft document.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	respond.JSON(w, r, http.StatusOK, toTotalsResponse(h.svc.Preview(draft)))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var draft document.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	doc, err := h.svc.Save(r.Context(), ownerID, draft)
	if err != nil {
		var stockErr *document.StockError
		if errors.As(err, &stockErr) {
			h.metrics.StockRejected()
		}

		respond.Error(w, r, err)

		return
	}

	h.metrics.DocumentSaved(string(doc.Kind))

	respond.JSON(w, r, http.StatusCreated, toResponse(doc))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	filter := document.ListFilter{Query: strings.TrimSpace(r.URL.Query().Get("q"))}

	switch k := document.Kind(r.URL.Query().Get("kind")); k {
	case "":
	case document.KindInvoice, document.KindBill:
		filter.Kind = new(k)
	default:
		respond.BadRequest(w, r, "kind must be invoice or bill")
		return
	}

	var err error

	if filter.StartDate, err = respond.DateParam(r, "start_date"); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	if filter.EndDate, err = respond.DateParam(r, "end_date"); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	docs, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(docs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(doc))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	var opts document.DeleteOptions

	if s := r.URL.Query().Get("restock"); s != "" {
		restock, err := strconv.ParseBool(s)
		if err != nil {
			respond.BadRequest(w, r, "restock must be true or false")
			return
		}

		opts.Restock = restock
	}

	if err := h.svc.Delete(r.Context(), ownerID, id, opts); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) duplicate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	draft, err := h.svc.Duplicate(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, draft)
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	share, err := h.svc.Share(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, shareResponse{
		Token:     share.Token,
		URL:       h.shareBaseURL + "/" + share.Token,
		ExpiresAt: share.ExpiresAt,
	})
}

func (h *Handler) shared(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.ResolveShare(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		switch {
		case errors.Is(err, document.ErrShareExpired):
			h.metrics.ShareResolved("expired")
		case errors.Is(err, document.ErrShareNotFound):
			h.metrics.ShareResolved("not_found")
		}

		respond.Error(w, r, err)

		return
	}

	h.metrics.ShareResolved("ok")

	respond.JSON(w, r, http.StatusOK, toSharedResponse(doc))
}
