package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Template is a named starting point for new invoices.
type Template struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Preset    Preset
	Builtin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Preset is the part of a draft a template fills in.
type Preset struct {
	Vendor        Vendor        `json:"vendor"`
	Items         []LineItem    `json:"items"`
	Discount      Adjustment    `json:"discount"`
	Tax           Adjustment    `json:"tax"`
	Notes         string        `json:"notes"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
}

// TemplateParams creates a template. A nil Preset starts from DefaultPreset.
type TemplateParams struct {
	Name   string
	Preset *Preset
}

var builtinNamespace = uuid.MustParse("3b0c2f7e-6a3d-4f1e-9c55-5d8a7e2b1f40")

// DefaultPreset is the preset of a freshly created template.
func DefaultPreset() Preset {
	return Preset{
		Items: []LineItem{{Quantity: 1, UnitPrice: decimal.Zero}},
		Tax:   Adjustment{Rate: decimal.NewFromInt(18)},
		Notes: "Thank you for your business!",
	}
}

func builtin(key, name string, p Preset) *Template {
	return &Template{
		ID:      uuid.NewSHA1(builtinNamespace, []byte(key)),
		Name:    name,
		Preset:  p,
		Builtin: true,
	}
}

func presetItems(names ...string) []LineItem {
	items := make([]LineItem, len(names))
	for i, name := range names {
		items[i] = LineItem{Name: name, Quantity: 1, UnitPrice: decimal.Zero}
	}

	return items
}

// BuiltinTemplates are offered to every owner and cannot be deleted.
func BuiltinTemplates() []*Template {
	gst := Adjustment{Enabled: true, Rate: decimal.NewFromInt(18)}

	return []*Template{
		builtin("basic", "Basic Invoice", Preset{
			Items: presetItems("Service/Product"),
			Tax:   gst,
			Notes: "Thank you for your business!",
		}),
		builtin("service", "Service Invoice", Preset{
			Items:    presetItems("Consultation Fee", "Service Charge"),
			Discount: Adjustment{Enabled: true, Rate: decimal.NewFromInt(10)},
			Tax:      gst,
			Notes:    "Payment due within 30 days. Thank you for choosing our services!",
		}),
		builtin("retail", "Retail Invoice", Preset{
			Items: presetItems("Product 1", "Product 2", "Product 3"),
			Tax:   gst,
			Notes: "All sales are final. Thank you for shopping with us!",
		}),
	}
}

func findBuiltin(id uuid.UUID) *Template {
	for _, t := range BuiltinTemplates() {
		if t.ID == id {
			return t
		}
	}

	return nil
}

// CreateTemplate stores a named preset for the owner.
func (s *Service) CreateTemplate(ctx context.Context, ownerID uuid.UUID, params TemplateParams) (*Template, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, &ValidationError{Fields: []FieldError{{Field: "name", Message: "is required"}}}
	}

	preset := DefaultPreset()
	if params.Preset != nil {
		preset = *params.Preset
	}

	if err := validatePreset(preset); err != nil {
		return nil, err
	}

	for _, t := range BuiltinTemplates() {
		if strings.EqualFold(t.Name, name) {
			return nil, ErrDuplicateTemplate
		}
	}

	now := s.now()

	t := &Template{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Preset:    preset,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func validatePreset(p Preset) error {
	var fields []FieldError

	if validate.Struct(p.Discount) != nil {
		fields = append(fields, FieldError{Field: "preset.discount.rate", Message: "must be between 0 and 100"})
	}

	if validate.Struct(p.Tax) != nil {
		fields = append(fields, FieldError{Field: "preset.tax.rate", Message: "must be between 0 and 100"})
	}

	if len(fields) == 0 {
		return nil
	}

	return &ValidationError{Fields: fields}
}

// ListTemplates returns the built-in templates followed by the owner's own, by name.
func (s *Service) ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]*Template, error) {
	own, err := s.repo.ListTemplates(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	return append(BuiltinTemplates(), own...), nil
}

func (s *Service) GetTemplate(ctx context.Context, ownerID, id uuid.UUID) (*Template, error) {
	if t := findBuiltin(id); t != nil {
		return t, nil
	}

	return s.repo.GetTemplate(ctx, ownerID, id)
}

func (s *Service) DeleteTemplate(ctx context.Context, ownerID, id uuid.UUID) error {
	if findBuiltin(id) != nil {
		return ErrBuiltinTemplate
	}

	return s.repo.DeleteTemplate(ctx, ownerID, id)
}

// DraftFromTemplate starts a new invoice draft from a template. A blank vendor is
// filled from the owner's profile when the draft is saved.
func (s *Service) DraftFromTemplate(ctx context.Context, ownerID, id uuid.UUID) (*Draft, error) {
	t, err := s.GetTemplate(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	return s.newDraft(Draft{
		Kind:          KindInvoice,
		Vendor:        t.Preset.Vendor,
		Items:         t.Preset.Items,
		Discount:      t.Preset.Discount,
		Tax:           t.Preset.Tax,
		Notes:         t.Preset.Notes,
		PaymentMethod: t.Preset.PaymentMethod,
	}), nil
}
