package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand,omitempty"`
	Price       string    `json:"price"`
	CostPrice   string    `json:"cost_price"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
	LowStock    bool      `json:"low_stock"`
	StockValue  string    `json:"stock_value"`
	Unit        string    `json:"unit,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Barcode     string    `json:"barcode,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type movementResponse struct {
	ID            uuid.UUID      `json:"id"`
	ProductID     uuid.UUID      `json:"product_id"`
	Reason        catalog.Reason `json:"reason"`
	Delta         int            `json:"delta"`
	StockBefore   int            `json:"stock_before"`
	StockAfter    int            `json:"stock_after"`
	ReferenceType string         `json:"reference_type"`
	ReferenceID   *uuid.UUID     `json:"reference_id,omitempty"`
	Note          string         `json:"note,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Products []productResponse `json:"products"`
}

func toResponse(p *catalog.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.CategoryLabel(),
		Brand:       p.Brand,
		Price:       money.Format(p.Price),
		CostPrice:   money.Format(p.CostPrice),
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		LowStock:    p.LowStock(),
		StockValue:  money.Format(p.StockValue()),
		Unit:        p.Unit,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		CreatedAt:   p.CreatedAt,
	}
}

func toResponseList(products []*catalog.Product) []productResponse {
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toResponse(p))
	}

	return resp
}

func toMovementResponse(m *catalog.Movement) movementResponse {
	return movementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Reason:        m.Reason,
		Delta:         m.Delta,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
}
