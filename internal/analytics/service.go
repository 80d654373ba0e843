package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
)

// DefaultTop is the ranking length used when a request does not set one.
const DefaultTop = 5

//go:generate mockgen -source=service.go -destination=service_mock.go -package=analytics
type DocumentLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter document.ListFilter) ([]*document.Document, error)
}

type ProductLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter catalog.ListFilter) ([]*catalog.Product, error)
}

type LocationSource interface {
	Location(ctx context.Context, ownerID uuid.UUID) (*time.Location, error)
}

type Request struct {
	Bucket    Bucketing
	StartDate *time.Time
	EndDate   *time.Time
	Top       int
}

type Report struct {
	Summary      Summary         `json:"summary"`
	TopCustomers []CustomerRank  `json:"top_customers"`
	TopProducts  []ProductRank   `json:"top_products"`
	Periods      []PeriodTotal   `json:"periods"`
	Categories   []CategoryTotal `json:"categories"`
	TopStock     []StockRank     `json:"top_stock"`
}

type Service struct {
	docs      DocumentLister
	products  ProductLister
	locations LocationSource
	now       func() time.Time
	log       zerolog.Logger
}

func NewService(docs DocumentLister, products ProductLister, locations LocationSource) *Service {
	return &Service{
		docs:      docs,
		products:  products,
		locations: locations,
		now:       time.Now,
		log:       logger.WithComponent("analytics"),
	}
}

// Report builds the analytics view for one owner. Malformed history never fails the
// report: the affected section is logged and left empty.
func (s *Service) Report(ctx context.Context, ownerID uuid.UUID, req Request) (*Report, error) {
	if req.Bucket == "" {
		req.Bucket = Daily
	}

	if !req.Bucket.Valid() {
		return nil, fmt.Errorf("unknown bucketing %q", req.Bucket)
	}

	if req.Top <= 0 {
		req.Top = DefaultTop
	}

	loc := time.UTC

	if s.locations != nil {
		l, err := s.locations.Location(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("loading owner location: %w", err)
		}

		loc = l
	}

	filter := document.ListFilter{StartDate: req.StartDate, EndDate: req.EndDate}.In(loc)

	docs, err := s.docs.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	report := &Report{
		TopCustomers: []CustomerRank{},
		TopProducts:  []ProductRank{},
		Periods:      []PeriodTotal{},
		Categories:   []CategoryTotal{},
		TopStock:     []StockRank{},
	}

	if summary, err := Summarize(docs, s.now().In(loc)); s.usable(err, "summary") {
		report.Summary = summary
	}

	if ranks, err := TopCustomers(docs, req.Top); s.usable(err, "top customers") {
		report.TopCustomers = ranks
	}

	if ranks, err := TopProducts(docs, req.Top); s.usable(err, "top products") {
		report.TopProducts = ranks
	}

	if periods, err := PeriodRollup(docs, req.Bucket, loc); s.usable(err, "period rollup") {
		report.Periods = periods
	}

	if s.products != nil {
		products, err := s.products.List(ctx, ownerID, catalog.ListFilter{})
		if err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}

		report.Categories = CategoryRollup(products)
		report.TopStock = TopStock(products, req.Top)
	}

	return report, nil
}

// usable logs aggregation input errors and reports whether the section can be used.
func (s *Service) usable(err error, section string) bool {
	if err == nil {
		return true
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		s.log.Warn().Err(err).Str("section", section).Msg("skipping analytics section")
		return false
	}

	s.log.Error().Err(err).Str("section", section).Msg("analytics section failed")

	return false
}
