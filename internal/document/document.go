package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes invoices from point-of-sale bills.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindBill    Kind = "bill"
)

// Prefix is the number prefix used for the kind.
func (k Kind) Prefix() string {
	if k == KindBill {
		return "BILL"
	}

	return "INV"
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

// Vendor is the issuing business as it was when the document was saved.
type Vendor struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	GSTIN   string `json:"gstin,omitempty"`
	UPIID   string `json:"upi_id,omitempty"`
	Footer  string `json:"footer,omitempty"`
}

// Customer is the buyer as it was when the document was saved.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

// LineItem is one row of a document. Its total is always derived.
type LineItem struct {
	ID        string          `json:"id"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// NewLineItem returns an empty item with quantity 1 and price 0.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.NewString(), Quantity: 1}
}

// EffectiveQuantity is the quantity used in totals; anything below 1 counts as 1.
func (li LineItem) EffectiveQuantity() int {
	return max(li.Quantity, 1)
}

// EffectivePrice is the unit price used in totals; negative prices count as 0.
func (li LineItem) EffectivePrice() decimal.Decimal {
	if li.UnitPrice.IsNegative() {
		return decimal.Zero
	}

	return li.UnitPrice
}

// Total is quantity times unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.EffectivePrice().Mul(decimal.NewFromInt(int64(li.EffectiveQuantity())))
}

// Adjustment is an optional percentage applied to a document (discount or tax).
// The rate of a disabled adjustment is ignored.
type Adjustment struct {
	Enabled bool            `json:"enabled"`
	Rate    decimal.Decimal `json:"rate"`
}

// Document is a saved invoice or bill. Saved documents are never edited.
type Document struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Kind          Kind
	Number        string
	Date          time.Time
	Vendor        Vendor
	Customer      Customer
	Items         []LineItem
	Discount      Adjustment
	Tax           Adjustment
	Totals        Totals
	Notes         string
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// Draft is an unsaved document as collected from the user.
type Draft struct {
	Kind          Kind          `json:"kind" validate:"oneof=invoice bill"`
	Date          time.Time     `json:"date"`
	Vendor        Vendor        `json:"vendor"`
	Customer      Customer      `json:"customer"`
	Items         []LineItem    `json:"items" validate:"min=1,dive"`
	Discount      Adjustment    `json:"discount"`
	Tax           Adjustment    `json:"tax"`
	Notes         string        `json:"notes"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"omitempty,oneof=cash card upi bank_transfer"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"omitempty,oneof=paid pending"`

	// dateOnly marks a Date given as a calendar day, placed in the owner's zone on save.
	dateOnly bool
}

// UnmarshalJSON accepts the date either as YYYY-MM-DD or as an RFC 3339 timestamp.
func (d *Draft) UnmarshalJSON(data []byte) error {
	type plain Draft

	aux := struct {
		*plain
		Date string `json:"date"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.dateOnly = false

	switch {
	case aux.Date == "":
		d.Date = time.Time{}
	case len(aux.Date) == len(time.DateOnly):
		t, err := time.Parse(time.DateOnly, aux.Date)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD or RFC 3339: %w", err)
		}

		d.Date = t
		d.dateOnly = true
	default:
		t, err := time.Parse(time.RFC3339, aux.Date)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD or RFC 3339: %w", err)
		}

		d.Date = t
	}

	return nil
}

// Totals computes the draft's totals at full precision.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Items, d.Discount, d.Tax)
}

// normalize trims free text and fills item IDs.
func (d *Draft) normalize() {
	d.Vendor.Name = strings.TrimSpace(d.Vendor.Name)
	d.Customer.Name = strings.TrimSpace(d.Customer.Name)
	d.Customer.Phone = strings.TrimSpace(d.Customer.Phone)
	d.Customer.Email = strings.TrimSpace(d.Customer.Email)
	d.Notes = strings.TrimSpace(d.Notes)

	for i := range d.Items {
		d.Items[i].Name = strings.TrimSpace(d.Items[i].Name)
		if d.Items[i].ID == "" {
			d.Items[i].ID = uuid.NewString()
		}
	}
}

// Share is a token granting read access to one invoice.
type Share struct {
	Token      string
	DocumentID uuid.UUID
	ExpiresAt  *time.Time
	Active     bool
	CreatedAt  time.Time
}

// Expired reports whether the share is past its expiry at now.
func (s *Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
