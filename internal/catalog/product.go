package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateCode     = errors.New("sku or barcode already in use")
	ErrInvalidAdjustment = errors.New("invalid stock adjustment")
	ErrInvalidProduct    = errors.New("invalid product")
)

// UncategorizedLabel is used for products without a category.
const UncategorizedLabel = "Uncategorized"

// Product is an item the business sells. Stock only changes through adjustments.
type Product struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Category    string
	Brand       string
	Price       decimal.Decimal
	CostPrice   decimal.Decimal
	Stock       int
	MinStock    int
	Unit        string
	SKU         string
	Barcode     string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// LowStock reports whether stock is at or below the reorder level.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// StockValue is the selling value of the units on hand.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// CategoryLabel returns the category, or UncategorizedLabel when blank.
func (p *Product) CategoryLabel() string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}

	return UncategorizedLabel
}

// Reason classifies an inventory movement.
type Reason string

const (
	ReasonSale       Reason = "sale"
	ReasonPurchase   Reason = "purchase"
	ReasonAdjustment Reason = "adjustment"
	ReasonReturn     Reason = "return"
)

// Adjustment is a requested signed change to a product's stock.
type Adjustment struct {
	ProductID     uuid.UUID
	Delta         int
	Reason        Reason
	ReferenceType string
	ReferenceID   *uuid.UUID
	Note          string
}

// Movement is the recorded inventory transaction for an applied adjustment.
type Movement struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	ProductID     uuid.UUID
	Reason        Reason
	Delta         int
	StockBefore   int
	StockAfter    int
	ReferenceType string
	ReferenceID   *uuid.UUID
	Note          string
	CreatedAt     time.Time
}
