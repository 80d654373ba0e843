package document_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

func TestValidate(t *testing.T) {
	type testCase struct {
		name       string
		draft      document.Draft
		wantFields []string
	}

	valid := invoiceDraft()

	tests := []testCase{
		{
			name:  "Valid Invoice",
			draft: valid,
		},
		{
			name: "Missing Parties",
			draft: document.Draft{
				Kind:  document.KindInvoice,
				Items: valid.Items,
			},
			wantFields: []string{"vendor.name", "customer.name"},
		},
		{
			name: "No Items",
			draft: document.Draft{
				Kind:     document.KindInvoice,
				Vendor:   valid.Vendor,
				Customer: valid.Customer,
			},
			wantFields: []string{"items"},
		},
		{
			name: "Negative Price And Zero Quantity",
			draft: document.Draft{
				Kind:     document.KindInvoice,
				Vendor:   valid.Vendor,
				Customer: valid.Customer,
				Items:    []document.LineItem{{Name: "Tea", Quantity: 0, UnitPrice: dec("-1")}},
			},
			wantFields: []string{"items[0].quantity", "items[0].unit_price"},
		},
		{
			name: "Unknown Kind And Payment",
			draft: document.Draft{
				Kind:          "quote",
				Vendor:        valid.Vendor,
				Customer:      valid.Customer,
				Items:         valid.Items,
				PaymentMethod: "cheque",
			},
			wantFields: []string{"kind", "payment_method"},
		},
		{
			name: "Enabled Rates Out Of Range",
			draft: document.Draft{
				Kind:     document.KindInvoice,
				Vendor:   valid.Vendor,
				Customer: valid.Customer,
				Items:    valid.Items,
				Discount: document.Adjustment{Enabled: true, Rate: dec("-5")},
				Tax:      document.Adjustment{Enabled: true, Rate: dec("150")},
			},
			wantFields: []string{"discount.rate", "tax.rate"},
		},
		{
			name: "Disabled Rates Ignored",
			draft: document.Draft{
				Kind:     document.KindInvoice,
				Vendor:   valid.Vendor,
				Customer: valid.Customer,
				Items:    valid.Items,
				Discount: document.Adjustment{Rate: dec("250")},
				Tax:      document.Adjustment{Rate: dec("-3")},
			},
		},
		{
			name: "Bill With Products",
			draft: document.Draft{
				Kind:     document.KindBill,
				Vendor:   valid.Vendor,
				Customer: valid.Customer,
				Items:    []document.LineItem{{ProductID: new(uuid.New()), Name: "Soap", Quantity: 1, UnitPrice: dec("30")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := document.Validate(tt.draft)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *document.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ErrorIs(t, err, document.ErrValidation)

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message)
			}

			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}
