package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

type totalsResponse struct {
	Subtotal       string `json:"subtotal"`
	DiscountRate   string `json:"discount_rate"`
	DiscountAmount string `json:"discount_amount"`
	TaxableAmount  string `json:"taxable_amount"`
	TaxRate        string `json:"tax_rate"`
	TaxAmount      string `json:"tax_amount"`
	GrandTotal     string `json:"grand_total"`
}

type lineItemResponse struct {
	ID        string     `json:"id"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	UnitPrice string     `json:"unit_price"`
	Total     string     `json:"total"`
}

type documentResponse struct {
	ID            uuid.UUID              `json:"id"`
	Kind          document.Kind          `json:"kind"`
	Number        string                 `json:"number"`
	Date          time.Time              `json:"date"`
	Vendor        document.Vendor        `json:"vendor"`
	Customer      document.Customer      `json:"customer"`
	Items         []lineItemResponse     `json:"items"`
	Discount      document.Adjustment    `json:"discount"`
	Tax           document.Adjustment    `json:"tax"`
	Totals        totalsResponse         `json:"totals"`
	Notes         string                 `json:"notes,omitempty"`
	PaymentMethod document.PaymentMethod `json:"payment_method,omitempty"`
	PaymentStatus document.PaymentStatus `json:"payment_status,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// sharedDocumentResponse is the public view of a shared invoice.
type sharedDocumentResponse struct {
	Number   string             `json:"number"`
	Date     time.Time          `json:"date"`
	Vendor   document.Vendor    `json:"vendor"`
	Customer document.Customer  `json:"customer"`
	Items    []lineItemResponse `json:"items"`
	Totals   totalsResponse     `json:"totals"`
	Notes    string             `json:"notes,omitempty"`
}

type shareResponse struct {
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func toTotalsResponse(t document.Totals) totalsResponse {
	t = t.Rounded()

	return totalsResponse{
		Subtotal:       money.Format(t.Subtotal),
		DiscountRate:   money.Format(t.DiscountRate),
		DiscountAmount: money.Format(t.DiscountAmount),
		TaxableAmount:  money.Format(t.TaxableAmount),
		TaxRate:        money.Format(t.TaxRate),
		TaxAmount:      money.Format(t.TaxAmount),
		GrandTotal:     money.Format(t.GrandTotal),
	}
}

func toItemsResponse(items []document.LineItem) []lineItemResponse {
	resp := make([]lineItemResponse, len(items))
	for i, li := range items {
		resp[i] = lineItemResponse{
			ID:        li.ID,
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.EffectiveQuantity(),
			UnitPrice: money.Format(li.EffectivePrice()),
			Total:     money.Format(li.Total()),
		}
	}

	return resp
}

func toResponse(doc *document.Document) documentResponse {
	return documentResponse{
		ID:            doc.ID,
		Kind:          doc.Kind,
		Number:        doc.Number,
		Date:          doc.Date,
		Vendor:        doc.Vendor,
		Customer:      doc.Customer,
		Items:         toItemsResponse(doc.Items),
		Discount:      doc.Discount,
		Tax:           doc.Tax,
		Totals:        toTotalsResponse(doc.Totals),
		Notes:         doc.Notes,
		PaymentMethod: doc.PaymentMethod,
		PaymentStatus: doc.PaymentStatus,
		CreatedAt:     doc.CreatedAt,
	}
}

func toResponseList(docs []*document.Document) []documentResponse {
	resp := make([]documentResponse, len(docs))
	for i, doc := range docs {
		resp[i] = toResponse(doc)
	}

	return resp
}

func toSharedResponse(doc *document.Document) sharedDocumentResponse {
	return sharedDocumentResponse{
		Number:   doc.Number,
		Date:     doc.Date,
		Vendor:   doc.Vendor,
		Customer: doc.Customer,
		Items:    toItemsResponse(doc.Items),
		Totals:   toTotalsResponse(doc.Totals),
		Notes:    doc.Notes,
	}
}
