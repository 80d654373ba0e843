package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/customer"
	"github.com/MrJamesThe3rd/billbook/internal/document"
)

// InputError reports historical data the aggregator cannot read.
type InputError struct {
	Index  int
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("malformed document at index %d: %s", e.Index, e.Reason)
}

type CustomerRank struct {
	Name          string          `json:"name"`
	TotalSpend    decimal.Decimal `json:"total_spend"`
	DocumentCount int             `json:"document_count"`
}

type ProductRank struct {
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// Bucketing selects the calendar period used by PeriodRollup.
type Bucketing string

const (
	Daily   Bucketing = "day"
	Weekly  Bucketing = "week"
	Monthly Bucketing = "month"
)

func (b Bucketing) Valid() bool {
	switch b {
	case Daily, Weekly, Monthly:
		return true
	}

	return false
}

type PeriodTotal struct {
	Label         string          `json:"label"`
	Start         time.Time       `json:"start"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	DocumentCount int             `json:"document_count"`
	Invoices      int             `json:"invoices"`
	Bills         int             `json:"bills"`
}

type Summary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	DocumentCount  int             `json:"document_count"`
	MonthRevenue   decimal.Decimal `json:"month_revenue"`
	MonthDocuments int             `json:"month_documents"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	TodayDocuments int             `json:"today_documents"`
}

type CategoryTotal struct {
	Category     string          `json:"category"`
	StockValue   decimal.Decimal `json:"stock_value"`
	ProductCount int             `json:"product_count"`
}

type StockRank struct {
	Name       string          `json:"name"`
	Stock      int             `json:"stock"`
	StockValue decimal.Decimal `json:"stock_value"`
}

func checkDocuments(docs []*document.Document, needDate bool) error {
	for i, doc := range docs {
		if doc == nil {
			return &InputError{Index: i, Reason: "nil document"}
		}

		if needDate && doc.Date.IsZero() {
			return &InputError{Index: i, Reason: "missing date"}
		}
	}

	return nil
}

// truncate keeps the first n entries; n <= 0 keeps everything.
func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}

	return s
}

// TopCustomers ranks customers by total spend. Names are matched after trimming,
// collapsing whitespace and folding case; the first spelling seen is the one shown.
// Ties keep the order in which customers were first encountered.
func TopCustomers(docs []*document.Document, n int) ([]CustomerRank, error) {
	if err := checkDocuments(docs, false); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	ranks := []CustomerRank{}

	for _, doc := range docs {
		key := customer.NormalizeName(doc.Customer.Name)

		i, ok := index[key]
		if !ok {
			i = len(ranks)
			index[key] = i
			ranks = append(ranks, CustomerRank{Name: doc.Customer.Name})
		}

		ranks[i].TotalSpend = ranks[i].TotalSpend.Add(doc.Totals.GrandTotal)
		ranks[i].DocumentCount++
	}

	slices.SortStableFunc(ranks, func(a, b CustomerRank) int {
		return b.TotalSpend.Cmp(a.TotalSpend)
	})

	return truncate(ranks, n), nil
}

// TopProducts ranks item names across all documents by revenue.
func TopProducts(docs []*document.Document, n int) ([]ProductRank, error) {
	if err := checkDocuments(docs, false); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	ranks := []ProductRank{}

	for _, doc := range docs {
		for _, item := range doc.Items {
			key := customer.NormalizeName(item.Name)

			i, ok := index[key]
			if !ok {
				i = len(ranks)
				index[key] = i
				ranks = append(ranks, ProductRank{Name: item.Name})
			}

			qty := max(item.Quantity, 0)

			ranks[i].QuantitySold += qty
			ranks[i].Revenue = ranks[i].Revenue.Add(item.EffectivePrice().Mul(decimal.NewFromInt(int64(qty))))
		}
	}

	slices.SortStableFunc(ranks, func(a, b ProductRank) int {
		return b.Revenue.Cmp(a.Revenue)
	})

	return truncate(ranks, n), nil
}

// bucketStart returns the first instant of the period containing t in loc.
// Weeks start on Monday.
func bucketStart(t time.Time, b Bucketing, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()

	switch b {
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Weekly:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

func bucketLabel(start time.Time, b Bucketing) string {
	switch b {
	case Monthly:
		return start.Format("2006-01")
	case Weekly:
		y, w := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	default:
		return start.Format("2006-01-02")
	}
}

// PeriodRollup totals documents per calendar period in loc, oldest period first.
func PeriodRollup(docs []*document.Document, b Bucketing, loc *time.Location) ([]PeriodTotal, error) {
	if err := checkDocuments(docs, true); err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[int64]*PeriodTotal)

	for _, doc := range docs {
		start := bucketStart(doc.Date, b, loc)

		p, ok := buckets[start.Unix()]
		if !ok {
			p = &PeriodTotal{Label: bucketLabel(start, b), Start: start}
			buckets[start.Unix()] = p
		}

		p.TotalSales = p.TotalSales.Add(doc.Totals.GrandTotal)
		p.DocumentCount++

		if doc.Kind == document.KindBill {
			p.Bills++
		} else {
			p.Invoices++
		}
	}

	out := make([]PeriodTotal, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}

	slices.SortFunc(out, func(a, b PeriodTotal) int {
		return a.Start.Compare(b.Start)
	})

	return out, nil
}

// Summarize returns all-time totals plus the calendar month and day containing now,
// evaluated in now's location.
func Summarize(docs []*document.Document, now time.Time) (Summary, error) {
	if err := checkDocuments(docs, true); err != nil {
		return Summary{}, err
	}

	loc := now.Location()
	month := bucketStart(now, Monthly, loc)
	today := bucketStart(now, Daily, loc)

	var s Summary

	for _, doc := range docs {
		total := doc.Totals.GrandTotal

		s.TotalRevenue = s.TotalRevenue.Add(total)
		s.DocumentCount++

		if bucketStart(doc.Date, Monthly, loc).Equal(month) {
			s.MonthRevenue = s.MonthRevenue.Add(total)
			s.MonthDocuments++
		}

		if bucketStart(doc.Date, Daily, loc).Equal(today) {
			s.TodayRevenue = s.TodayRevenue.Add(total)
			s.TodayDocuments++
		}
	}

	return s, nil
}

// CategoryRollup groups stock value by category, highest value first.
func CategoryRollup(products []*catalog.Product) []CategoryTotal {
	index := make(map[string]int)
	out := []CategoryTotal{}

	for _, p := range products {
		if p == nil {
			continue
		}

		label := p.CategoryLabel()

		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, CategoryTotal{Category: label})
		}

		out[i].StockValue = out[i].StockValue.Add(p.StockValue())
		out[i].ProductCount++
	}

	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.StockValue.Cmp(a.StockValue)
	})

	return out
}

// TopStock ranks products by the value of their stock on hand.
func TopStock(products []*catalog.Product, n int) []StockRank {
	out := []StockRank{}

	for _, p := range products {
		if p == nil {
			continue
		}

		out = append(out, StockRank{Name: p.Name, Stock: p.Stock, StockValue: p.StockValue()})
	}

	slices.SortStableFunc(out, func(a, b StockRank) int {
		return cmp.Or(b.StockValue.Cmp(a.StockValue), cmp.Compare(b.Stock, a.Stock))
	})

	return truncate(out, n)
}
