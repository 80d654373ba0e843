package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func item(qty int, price string) document.LineItem {
	return document.LineItem{ID: "x", Name: "item", Quantity: qty, UnitPrice: dec(price)}
}

func TestComputeTotals(t *testing.T) {
	type args struct {
		items    []document.LineItem
		discount document.Adjustment
		tax      document.Adjustment
	}

	type want struct {
		subtotal, discount, taxable, tax, grand string
	}

	type testCase struct {
		name string
		args args
		want want
	}

	tests := []testCase{
		{
			name: "Tax Only",
			args: args{
				items: []document.LineItem{item(2, "100"), item(1, "50")},
				tax:   document.Adjustment{Enabled: true, Rate: dec("18")},
			},
			want: want{subtotal: "250", discount: "0", taxable: "250", tax: "45", grand: "295"},
		},
		{
			name: "Discount Then Tax",
			args: args{
				items:    []document.LineItem{item(2, "100"), item(1, "50")},
				discount: document.Adjustment{Enabled: true, Rate: dec("10")},
				tax:      document.Adjustment{Enabled: true, Rate: dec("18")},
			},
			want: want{subtotal: "250", discount: "25", taxable: "225", tax: "40.5", grand: "265.5"},
		},
		{
			name: "Disabled Adjustments Ignore Rates",
			args: args{
				items:    []document.LineItem{item(3, "10")},
				discount: document.Adjustment{Enabled: false, Rate: dec("50")},
				tax:      document.Adjustment{Enabled: false, Rate: dec("28")},
			},
			want: want{subtotal: "30", discount: "0", taxable: "30", tax: "0", grand: "30"},
		},
		{
			name: "Empty Items",
			args: args{
				discount: document.Adjustment{Enabled: true, Rate: dec("10")},
				tax:      document.Adjustment{Enabled: true, Rate: dec("18")},
			},
			want: want{subtotal: "0", discount: "0", taxable: "0", tax: "0", grand: "0"},
		},
		{
			name: "Quantity Below One Counts As One",
			args: args{
				items: []document.LineItem{item(0, "40"), item(-3, "10")},
			},
			want: want{subtotal: "50", discount: "0", taxable: "50", tax: "0", grand: "50"},
		},
		{
			name: "Negative Price Counts As Zero",
			args: args{
				items: []document.LineItem{item(2, "-5"), item(1, "20")},
			},
			want: want{subtotal: "20", discount: "0", taxable: "20", tax: "0", grand: "20"},
		},
		{
			name: "Rates Are Clamped",
			args: args{
				items:    []document.LineItem{item(1, "100")},
				discount: document.Adjustment{Enabled: true, Rate: dec("150")},
				tax:      document.Adjustment{Enabled: true, Rate: dec("-5")},
			},
			want: want{subtotal: "100", discount: "100", taxable: "0", tax: "0", grand: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := document.ComputeTotals(tt.args.items, tt.args.discount, tt.args.tax)

			assertAmount(t, tt.want.subtotal, got.Subtotal, "subtotal")
			assertAmount(t, tt.want.discount, got.DiscountAmount, "discount")
			assertAmount(t, tt.want.taxable, got.TaxableAmount, "taxable")
			assertAmount(t, tt.want.tax, got.TaxAmount, "tax")
			assertAmount(t, tt.want.grand, got.GrandTotal, "grand total")

			// taxable + tax = grand and subtotal - discount = taxable
			assert.True(t, got.TaxableAmount.Add(got.TaxAmount).Equal(got.GrandTotal))
			assert.True(t, got.Subtotal.Sub(got.DiscountAmount).Equal(got.TaxableAmount))
		})
	}
}

func TestComputeTotals_OrderIndependent(t *testing.T) {
	discount := document.Adjustment{Enabled: true, Rate: dec("7.5")}
	tax := document.Adjustment{Enabled: true, Rate: dec("12")}

	a := []document.LineItem{item(3, "19.99"), item(1, "0.01"), item(7, "3.33")}
	b := []document.LineItem{a[2], a[0], a[1]}

	ta := document.ComputeTotals(a, discount, tax)
	tb := document.ComputeTotals(b, discount, tax)

	assert.True(t, ta.Subtotal.Equal(tb.Subtotal))
	assert.True(t, ta.DiscountAmount.Equal(tb.DiscountAmount))
	assert.True(t, ta.TaxAmount.Equal(tb.TaxAmount))
	assert.True(t, ta.GrandTotal.Equal(tb.GrandTotal))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []document.LineItem{item(2, "33.333")}
	tax := document.Adjustment{Enabled: true, Rate: dec("18")}

	first := document.ComputeTotals(items, document.Adjustment{}, tax)
	second := document.ComputeTotals(items, document.Adjustment{}, tax)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
}

func TestTotals_Rounded(t *testing.T) {
	items := []document.LineItem{item(1, "10.005")}
	tax := document.Adjustment{Enabled: true, Rate: dec("18")}

	got := document.ComputeTotals(items, document.Adjustment{}, tax).Rounded()

	assert.Equal(t, "10.01", got.Subtotal.StringFixed(2))
	assert.Equal(t, "1.80", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "11.81", got.GrandTotal.StringFixed(2))
}

func TestTotals_RoundedStaysConsistent(t *testing.T) {
	tests := []struct {
		name     string
		items    []document.LineItem
		discount document.Adjustment
		tax      document.Adjustment
		want     [5]string
	}{
		{
			name:     "Small Discount",
			items:    []document.LineItem{item(1, "0.10")},
			discount: document.Adjustment{Enabled: true, Rate: dec("5")},
			want:     [5]string{"0.10", "0.01", "0.09", "0.00", "0.09"},
		},
		{
			name:     "Discount And Tax",
			items:    []document.LineItem{item(3, "3.335"), item(1, "0.015")},
			discount: document.Adjustment{Enabled: true, Rate: dec("7.5")},
			tax:      document.Adjustment{Enabled: true, Rate: dec("18")},
			want:     [5]string{"10.02", "0.75", "9.27", "1.67", "10.94"},
		},
		{
			name:  "Tax Only",
			items: []document.LineItem{item(7, "1.333")},
			tax:   document.Adjustment{Enabled: true, Rate: dec("12.5")},
			want:  [5]string{"9.33", "0.00", "9.33", "1.17", "10.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := document.ComputeTotals(tt.items, tt.discount, tt.tax).Rounded()

			assert.Equal(t, tt.want[0], got.Subtotal.StringFixed(2), "subtotal")
			assert.Equal(t, tt.want[1], got.DiscountAmount.StringFixed(2), "discount")
			assert.Equal(t, tt.want[2], got.TaxableAmount.StringFixed(2), "taxable")
			assert.Equal(t, tt.want[3], got.TaxAmount.StringFixed(2), "tax")
			assert.Equal(t, tt.want[4], got.GrandTotal.StringFixed(2), "grand total")

			assert.True(t, got.Subtotal.Sub(got.DiscountAmount).Equal(got.TaxableAmount))
			assert.True(t, got.TaxableAmount.Add(got.TaxAmount).Equal(got.GrandTotal))
		})
	}
}

func TestLineItem_Total(t *testing.T) {
	assertAmount(t, "300", item(3, "100").Total(), "total")
	assertAmount(t, "100", item(0, "100").Total(), "total")

	li := document.NewLineItem()
	assert.Equal(t, 1, li.Quantity)
	assert.True(t, li.UnitPrice.IsZero())
	assert.NotEmpty(t, li.ID)
}
