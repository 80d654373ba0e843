package document

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
)

// DefaultShareTTL is how long a share link stays valid unless configured otherwise.
const DefaultShareTTL = 24 * time.Hour

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=document
type Repository interface {
	BeginSave(ctx context.Context, ownerID uuid.UUID) (SaveTx, error)
	GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*Document, error)
	ListDocuments(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Document, error)
	DeleteDocument(ctx context.Context, ownerID, id uuid.UUID, restock bool) error

	CreateShare(ctx context.Context, share *Share) error
	GetShare(ctx context.Context, token string) (*Share, error)
	GetSharedDocument(ctx context.Context, id uuid.UUID) (*Document, error)

	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, ownerID, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]*Template, error)
	DeleteTemplate(ctx context.Context, ownerID, id uuid.UUID) error
}

// SaveTx is one atomic document save: numbering, insert and stock movements
// either all commit or all roll back.
type SaveTx interface {
	NextNumber(ctx context.Context, kind Kind) (int64, error)
	InsertDocument(ctx context.Context, doc *Document) error
	AdjustStock(ctx context.Context, adj catalog.Adjustment) error
	Commit() error
	Rollback() error
}

// CustomerBook remembers customers named on saved documents.
type CustomerBook interface {
	Remember(ctx context.Context, ownerID uuid.UUID, c Customer) error
}

// LocationSource supplies the owner's time zone for calendar-day filters.
type LocationSource interface {
	Location(ctx context.Context, ownerID uuid.UUID) (*time.Location, error)
}

// VendorSource supplies the owner's business details for new documents.
type VendorSource interface {
	Vendor(ctx context.Context, ownerID uuid.UUID) (Vendor, error)
}

// ListFilter narrows a document listing. EndDate is inclusive: documents
// dated any time on that day match.
type ListFilter struct {
	Kind      *Kind
	Query     string
	StartDate *time.Time
	EndDate   *time.Time
}

// In reads the filter's dates as calendar days and rebuilds them as midnight in
// loc, so a day means the owner's day rather than the UTC one.
func (f ListFilter) In(loc *time.Location) ListFilter {
	f.StartDate = localDay(f.StartDate, loc)
	f.EndDate = localDay(f.EndDate, loc)

	return f
}

func localDay(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}

	y, m, d := t.Date()

	return new(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

type DeleteOptions struct {
	// Restock puts the quantities of a deleted bill back into stock.
	Restock bool
}

type Service struct {
	repo      Repository
	customers CustomerBook
	vendors   VendorSource
	locations LocationSource
	shareTTL  time.Duration
	now       func() time.Time
	token     func() (string, error)
	log       zerolog.Logger
}

type Option func(*Service)

func WithCustomerBook(c CustomerBook) Option {
	return func(s *Service) { s.customers = c }
}

func WithVendorSource(v VendorSource) Option {
	return func(s *Service) { s.vendors = v }
}

func WithLocationSource(l LocationSource) Option {
	return func(s *Service) { s.locations = l }
}

// WithShareTTL sets the share link lifetime. Zero means links never expire.
func WithShareTTL(ttl time.Duration) Option {
	return func(s *Service) { s.shareTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		shareTTL: DefaultShareTTL,
		now:      time.Now,
		token:    newShareToken,
		log:      logger.WithComponent("documents"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FormatNumber renders a document number such as INV-000042.
func FormatNumber(kind Kind, seq int64) string {
	return fmt.Sprintf("%s-%06d", kind.Prefix(), seq)
}

// Preview returns the rounded totals of a draft without saving anything.
func (s *Service) Preview(d Draft) Totals {
	return d.Totals().Rounded()
}

// Save validates and persists a draft. Bills decrement stock for every line in the
// same transaction; if any product lacks stock the whole bill is rejected with a
// *StockError. Other persistence failures are returned as *SaveError.
func (s *Service) Save(ctx context.Context, ownerID uuid.UUID, draft Draft) (*Document, error) {
	draft.Items = slices.Clone(draft.Items)
	draft.normalize()

	if draft.Kind == "" {
		draft.Kind = KindInvoice
	}

	if draft.Vendor.Name == "" && s.vendors != nil {
		vendor, err := s.vendors.Vendor(ctx, ownerID)
		if err != nil {
			return nil, &SaveError{Op: "load vendor", Err: err}
		}

		draft.Vendor = vendor
	}

	if err := Validate(draft); err != nil {
		return nil, err
	}

	if draft.dateOnly && s.locations != nil {
		loc, err := s.locations.Location(ctx, ownerID)
		if err != nil {
			return nil, &SaveError{Op: "load location", Err: err}
		}

		draft.Date = *localDay(&draft.Date, loc)
	}

	doc := s.fromDraft(ownerID, draft)

	stx, err := s.repo.BeginSave(ctx, ownerID)
	if err != nil {
		return nil, &SaveError{Op: "begin", Err: err}
	}
	defer stx.Rollback()

	seq, err := stx.NextNumber(ctx, doc.Kind)
	if err != nil {
		return nil, &SaveError{Op: "allocate number", Err: err}
	}

	doc.Number = FormatNumber(doc.Kind, seq)

	if err := stx.InsertDocument(ctx, doc); err != nil {
		return nil, &SaveError{Op: "insert", Err: err}
	}

	if doc.Kind == KindBill {
		if err := s.takeStock(ctx, stx, doc); err != nil {
			return nil, err
		}
	}

	if err := stx.Commit(); err != nil {
		return nil, &SaveError{Op: "commit", Err: err}
	}

	s.rememberCustomer(ctx, ownerID, doc)

	return doc, nil
}

func (s *Service) takeStock(ctx context.Context, stx SaveTx, doc *Document) error {
	for _, item := range doc.Items {
		qty := item.EffectiveQuantity()

		err := stx.AdjustStock(ctx, catalog.Adjustment{
			ProductID:     *item.ProductID,
			Delta:         -qty,
			Reason:        catalog.ReasonSale,
			ReferenceType: string(KindBill),
			ReferenceID:   new(doc.ID),
			Note:          "Sale via bill " + doc.Number,
		})
		if err == nil {
			continue
		}

		if errors.Is(err, catalog.ErrInsufficientStock) || errors.Is(err, catalog.ErrNotFound) {
			return &StockError{ProductID: *item.ProductID, Item: item.Name, Requested: qty, Err: err}
		}

		return &SaveError{Op: "adjust stock", Err: err}
	}

	return nil
}

func (s *Service) rememberCustomer(ctx context.Context, ownerID uuid.UUID, doc *Document) {
	if s.customers == nil || doc.Customer.Name == "" {
		return
	}

	if err := s.customers.Remember(ctx, ownerID, doc.Customer); err != nil {
		s.log.Warn().Err(err).
			Str("document", doc.Number).
			Msg("failed to remember customer")
	}
}

func (s *Service) fromDraft(ownerID uuid.UUID, d Draft) *Document {
	date := d.Date
	if date.IsZero() {
		date = s.now()
	}

	doc := &Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Kind:          d.Kind,
		Date:          date,
		Vendor:        d.Vendor,
		Customer:      d.Customer,
		Items:         d.Items,
		Discount:      d.Discount,
		Tax:           d.Tax,
		Totals:        d.Totals().Rounded(),
		Notes:         d.Notes,
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: d.PaymentStatus,
	}

	if doc.Kind == KindBill {
		if doc.PaymentMethod == "" {
			doc.PaymentMethod = PaymentCash
		}

		if doc.PaymentStatus == "" {
			doc.PaymentStatus = PaymentPaid
		}
	}

	return doc
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Document, error) {
	return s.repo.GetDocument(ctx, ownerID, id)
}

// List returns an owner's documents, newest first. Filter dates are calendar days
// in the owner's time zone.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Document, error) {
	if s.locations != nil && (filter.StartDate != nil || filter.EndDate != nil) {
		loc, err := s.locations.Location(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("loading owner location: %w", err)
		}

		filter = filter.In(loc)
	}

	return s.repo.ListDocuments(ctx, ownerID, filter)
}

// Delete soft-deletes a document. Stock is only restored for bills when asked to.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID, opts DeleteOptions) error {
	doc, err := s.repo.GetDocument(ctx, ownerID, id)
	if err != nil {
		return err
	}

	restock := opts.Restock && doc.Kind == KindBill

	return s.repo.DeleteDocument(ctx, ownerID, doc.ID, restock)
}

// Duplicate returns a new draft copied from a saved document. The source is untouched.
func (s *Service) Duplicate(ctx context.Context, ownerID, id uuid.UUID) (*Draft, error) {
	doc, err := s.repo.GetDocument(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	return s.newDraft(Draft{
		Kind:          doc.Kind,
		Vendor:        doc.Vendor,
		Customer:      doc.Customer,
		Items:         doc.Items,
		Discount:      doc.Discount,
		Tax:           doc.Tax,
		Notes:         doc.Notes,
		PaymentMethod: doc.PaymentMethod,
		PaymentStatus: doc.PaymentStatus,
	}), nil
}

// newDraft dates src today and gives it its own copy of the items under fresh IDs.
func (s *Service) newDraft(src Draft) *Draft {
	items := make([]LineItem, len(src.Items))
	for i, item := range src.Items {
		items[i] = LineItem{
			ID:        uuid.NewString(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}

		if item.ProductID != nil {
			items[i].ProductID = new(*item.ProductID)
		}
	}

	src.Items = items
	src.Date = s.now()

	return &src
}
