package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/http/respond"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

const maxImportSize = 10 << 20

type Handler struct {
	svc       *catalog.Service
	importSvc *importer.Service
}

func NewHandler(svc *catalog.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/stock", h.adjustStock)
	r.Get("/{id}/movements", h.movements)
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Unit        string          `json:"unit"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), ownerID, catalog.CreateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	filter := catalog.ListFilter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}

	if s := q.Get("low_stock"); s != "" {
		low, err := strconv.ParseBool(s)
		if err != nil {
			respond.BadRequest(w, r, "low_stock must be true or false")
			return
		}

		filter.LowStockOnly = low
	}

	products, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponseList(products))
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

	p, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(p))
}

type updateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	MinStock    *int             `json:"min_stock,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
}

// update changes descriptive fields only; stock moves through /stock.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	p, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	setIf(&p.Name, req.Name)
	setIf(&p.Description, req.Description)
	setIf(&p.Category, req.Category)
	setIf(&p.Brand, req.Brand)
	setIf(&p.Price, req.Price)
	setIf(&p.CostPrice, req.CostPrice)
	setIf(&p.MinStock, req.MinStock)
	setIf(&p.Unit, req.Unit)
	setIf(&p.SKU, req.SKU)
	setIf(&p.Barcode, req.Barcode)

	if err := h.svc.Update(r.Context(), p); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(p))
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
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

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type adjustStockRequest struct {
	Delta  int            `json:"delta"`
	Reason catalog.Reason `json:"reason"`
	Note   string         `json:"note"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	m, err := h.svc.AdjustStock(r.Context(), ownerID, catalog.Adjustment{
		ProductID: id,
		Delta:     req.Delta,
		Reason:    req.Reason,
		Note:      req.Note,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toMovementResponse(m))
}

func (h *Handler) movements(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	id, ok := respond.PathID(w, r)
	if !ok {
		return
	}

	movements, err := h.svc.Movements(r.Context(), ownerID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]movementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, toMovementResponse(m))
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

// importCSV accepts a multipart "file" and an optional "format" naming the
// export layout. The whole file is imported or nothing is.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respond.BadRequest(w, r, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.FormValue("format"), file)
	if err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	products, err := h.svc.Import(r.Context(), ownerID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, importResponse{
		Imported: len(products),
		Products: toResponseList(products),
	})
}
