package catalog

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	CreateProducts(ctx context.Context, products []*Product) error
	GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error

	AdjustStock(ctx context.Context, ownerID uuid.UUID, adj Adjustment) (*Movement, error)
	ListMovements(ctx context.Context, ownerID, productID uuid.UUID) ([]*Movement, error)
}

// CodeGenerator issues barcodes for products that arrive without one.
type CodeGenerator interface {
	Barcode() string
}

type Service struct {
	repo     Repository
	codes    CodeGenerator
	validate *validator.Validate
}

func NewService(repo Repository, codes CodeGenerator) *Service {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}

		return nil
	}, decimal.Decimal{})

	return &Service{repo: repo, codes: codes, validate: v}
}

type CreateParams struct {
	Name        string          `validate:"required"`
	Description string
	Category    string
	Brand       string
	Price       decimal.Decimal `validate:"gte=0"`
	CostPrice   decimal.Decimal `validate:"gte=0"`
	Stock       int             `validate:"gte=0"`
	MinStock    int             `validate:"gte=0"`
	Unit        string
	SKU         string
	Barcode     string
}

type ListFilter struct {
	Category     string
	Query        string
	LowStockOnly bool
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Product, error) {
	p, err := s.newProduct(ownerID, params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Import creates all products or none.
func (s *Service) Import(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Product, error) {
	if len(params) == 0 {
		return nil, nil
	}

	products := make([]*Product, 0, len(params))

	for i, p := range params {
		product, err := s.newProduct(ownerID, p)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}

		products = append(products, product)
	}

	if err := s.repo.CreateProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}

	return products, nil
}

func (s *Service) newProduct(ownerID uuid.UUID, params CreateParams) (*Product, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	barcode := strings.TrimSpace(params.Barcode)
	if barcode == "" && s.codes != nil {
		barcode = s.codes.Barcode()
	}

	return &Product{
		OwnerID:     ownerID,
		Name:        params.Name,
		Description: strings.TrimSpace(params.Description),
		Category:    strings.TrimSpace(params.Category),
		Brand:       strings.TrimSpace(params.Brand),
		Price:       params.Price,
		CostPrice:   params.CostPrice,
		Stock:       params.Stock,
		MinStock:    params.MinStock,
		Unit:        strings.TrimSpace(params.Unit),
		SKU:         strings.TrimSpace(params.SKU),
		Barcode:     barcode,
	}, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, ownerID, filter)
}

// Update saves descriptive fields and prices. Stock is left as stored.
func (s *Service) Update(ctx context.Context, p *Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}

	if p.Price.IsNegative() || p.CostPrice.IsNegative() || p.MinStock < 0 {
		return fmt.Errorf("%w: prices and minimum stock must not be negative", ErrInvalidProduct)
	}

	return s.repo.UpdateProduct(ctx, p)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, ownerID, id)
}

// AdjustStock applies a manual stock change. Sales only happen through bills.
func (s *Service) AdjustStock(ctx context.Context, ownerID uuid.UUID, adj Adjustment) (*Movement, error) {
	if adj.Delta == 0 {
		return nil, fmt.Errorf("%w: delta must not be zero", ErrInvalidAdjustment)
	}

	switch adj.Reason {
	case ReasonPurchase, ReasonAdjustment, ReasonReturn:
	default:
		return nil, fmt.Errorf("%w: unsupported reason %q", ErrInvalidAdjustment, adj.Reason)
	}

	if adj.ReferenceType == "" {
		adj.ReferenceType = "manual"
	}

	return s.repo.AdjustStock(ctx, ownerID, adj)
}

func (s *Service) Movements(ctx context.Context, ownerID, productID uuid.UUID) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, ownerID, productID)
}
