package document

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billbook/internal/money"
)

// Totals is the derived money summary of a document.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// ComputeTotals derives a document's totals from its items and adjustments.
//
// Tax applies to the amount left after discount. Disabled adjustments contribute
// exactly zero, and rates are clamped into [0, 100]. The result keeps full
// precision; call Rounded before presenting or storing it.
func ComputeTotals(items []LineItem, discount, tax Adjustment) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}

	t := Totals{
		Subtotal:       subtotal,
		DiscountRate:   decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxRate:        decimal.Zero,
		TaxAmount:      decimal.Zero,
	}

	if discount.Enabled {
		t.DiscountRate = money.ClampRate(discount.Rate)
		t.DiscountAmount = money.Percent(subtotal, t.DiscountRate)
	}

	t.TaxableAmount = subtotal.Sub(t.DiscountAmount)

	if tax.Enabled {
		t.TaxRate = money.ClampRate(tax.Rate)
		t.TaxAmount = money.Percent(t.TaxableAmount, t.TaxRate)
	}

	t.GrandTotal = t.TaxableAmount.Add(t.TaxAmount)

	return t
}

// Rounded returns the totals at two decimal places. Discount and tax are
// recomputed from the rounded amounts they derive from, so the stored figures
// satisfy taxable = subtotal - discount and grand = taxable + tax exactly.
func (t Totals) Rounded() Totals {
	r := Totals{
		Subtotal:     money.Round(t.Subtotal),
		DiscountRate: t.DiscountRate,
		TaxRate:      t.TaxRate,
	}

	r.DiscountAmount = money.Round(money.Percent(r.Subtotal, t.DiscountRate))
	r.TaxableAmount = r.Subtotal.Sub(r.DiscountAmount)
	r.TaxAmount = money.Round(money.Percent(r.TaxableAmount, t.TaxRate))
	r.GrandTotal = r.TaxableAmount.Add(r.TaxAmount)

	return r
}
