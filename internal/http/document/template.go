package document

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/http/respond"
)

type templateRequest struct {
	Name   string           `json:"name"`
	Preset *document.Preset `json:"preset"`
}

type templateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Builtin   bool            `json:"builtin"`
	Preset    document.Preset `json:"preset"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

func toTemplateResponse(t *document.Template) templateResponse {
	resp := templateResponse{
		ID:      t.ID,
		Name:    t.Name,
		Builtin: t.Builtin,
		Preset:  t.Preset,
	}

	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = new(t.CreatedAt)
	}

	return resp
}

// TemplateRoutes serves invoice templates and drafts started from them.
func (h *Handler) TemplateRoutes(r chi.Router) {
	r.Get("/", h.listTemplates)
	r.Post("/", h.createTemplate)
	r.Get("/{id}", h.getTemplate)
	r.Delete("/{id}", h.deleteTemplate)
	r.Post("/{id}/draft", h.draftFromTemplate)
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	templates, err := h.svc.ListTemplates(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]templateResponse, len(templates))
	for i, t := range templates {
		resp[i] = toTemplateResponse(t)
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	t, err := h.svc.CreateTemplate(r.Context(), ownerID, document.TemplateParams{Name: req.Name, Preset: req.Preset})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toTemplateResponse(t))
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.GetTemplate(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toTemplateResponse(t))
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteTemplate(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) draftFromTemplate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	draft, err := h.svc.DraftFromTemplate(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, draft)
}
