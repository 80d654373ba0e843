package view

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/customer"
	"github.com/MrJamesThe3rd/billbook/internal/document"
)

var (
	riceID = uuid.MustParse("5f0c6f0e-1111-4a8e-9c39-7d2f0e4b9a01")
	rice   = &catalog.Product{ID: riceID, Name: "Rice", Price: decimal.NewFromInt(60), Stock: 3}
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddProduct(t *testing.T) {
	items := addProduct(nil, rice)
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, riceID, *items[0].ProductID)
	assert.True(t, decimal.NewFromInt(60).Equal(items[0].UnitPrice))

	merged := addProduct(items, rice)
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].Quantity)
	assert.Equal(t, 1, items[0].Quantity, "input slice must not change")
}

func TestChangeQuantity(t *testing.T) {
	items := []document.LineItem{{Name: "Pen", Quantity: 2}}

	assert.Equal(t, 3, changeQuantity(items, 0, 1)[0].Quantity)
	assert.Equal(t, 1, changeQuantity(items, 0, -5)[0].Quantity)
	assert.Equal(t, items, changeQuantity(items, 4, 1))
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	items := []document.LineItem{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	got := removeItem(items, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[1].Name)
	assert.Len(t, items, 3)

	assert.Equal(t, items, removeItem(items, -1))
	assert.Equal(t, 1, clampCursor(2, 2))
	assert.Equal(t, 0, clampCursor(0, 0))
}

func TestFillFromKnown(t *testing.T) {
	known := &customer.Customer{Name: "Asha Rao", Phone: "98450", Email: "asha@example.com"}

	got := fillFromKnown(document.Customer{Name: "asha rao", Phone: "11111"}, known)
	assert.Equal(t, "asha rao", got.Name)
	assert.Equal(t, "11111", got.Phone)
	assert.Equal(t, "asha@example.com", got.Email)
}

func TestSaveErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Stock",
			err:  &document.StockError{ProductID: riceID, Item: "Rice", Requested: 5, Err: catalog.ErrInsufficientStock},
			want: "Not enough stock for Rice (wanted 5). Nothing was saved.",
		},
		{
			name: "Validation",
			err:  &document.ValidationError{Fields: []document.FieldError{{Field: "customer.name", Message: "is required"}}},
			want: "Cannot save: customer.name is required",
		},
		{
			name: "Wrapped Stock",
			err:  fmt.Errorf("save: %w", &document.StockError{Item: "Tea", Requested: 2}),
			want: "Not enough stock for Tea (wanted 2). Nothing was saved.",
		},
		{
			name: "Other",
			err:  assert.AnError,
			want: "Error: " + assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, saveErrorMessage(tt.err))
		})
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateRate("18"))
	assert.NoError(t, validateRate("0"))
	assert.Error(t, validateRate("101"))
	assert.Error(t, validateRate("-1"))
	assert.Error(t, validateRate("ten"))

	assert.NoError(t, validateQuantity(" 3 "))
	assert.Error(t, validateQuantity("0"))

	assert.NoError(t, validateDelta("-4"))
	assert.Error(t, validateDelta("0"))

	assert.NoError(t, validatePrice("1,250.00"))
	assert.Error(t, validatePrice("-2"))
}

func TestTimeframeToDateRange(t *testing.T) {
	now := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		tf        Timeframe
		wantStart string
		wantEnd   string
	}{
		{TimeframeToday, "2026-03-18", "2026-03-18"},
		{TimeframeThisWeek, "2026-03-16", "2026-03-18"},
		{TimeframeThisMonth, "2026-03-01", "2026-03-18"},
		{TimeframeLastMonth, "2026-02-01", "2026-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := timeframeToDateRange(tt.tf, now)
			assert.Equal(t, tt.wantStart, FormatDate(start))
			assert.Equal(t, tt.wantEnd, FormatDate(end))
		})
	}

	sunday := time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC)
	start, _ := timeframeToDateRange(TimeframeThisWeek, sunday)
	assert.Equal(t, "2026-03-16", FormatDate(start))
}

func TestTimeframeSelectedMsg(t *testing.T) {
	start, end := (TimeframeSelectedMsg{All: true}).Range()
	assert.Nil(t, start)
	assert.Nil(t, end)

	day := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	msg := TimeframeSelectedMsg{Start: day, End: day}
	assert.Equal(t, "2026-03-18", msg.Label())

	start, end = msg.Range()
	require.NotNil(t, start)
	assert.Equal(t, day, *end)
}

func TestDraftModel_EditsItems(t *testing.T) {
	draft := document.Draft{
		Kind:     document.KindInvoice,
		Customer: document.Customer{Name: "Asha"},
		Items: []document.LineItem{
			{ID: "a", Name: "Rice", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{ID: "b", Name: "Tea", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
		Tax: document.Adjustment{Enabled: true, Rate: decimal.NewFromInt(18)},
	}

	m := NewDraftModelFrom(document.NewService(nil), nil, nil, uuid.New(), draft)
	require.Equal(t, draftStateItems, m.state)
	assert.Contains(t, m.View(), "295.00")

	next, _ := m.Update(key("+"))
	m = next.(DraftModel)
	assert.Equal(t, 3, m.draft.Items[0].Quantity)
	assert.Equal(t, 2, draft.Items[0].Quantity, "source draft must not change")
	assert.Contains(t, m.View(), "413.00")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(DraftModel)
	next, _ = m.Update(key("x"))
	m = next.(DraftModel)
	require.Len(t, m.draft.Items, 1)
	assert.Equal(t, 0, m.cursor)

	next, _ = m.Update(key("x"))
	m = next.(DraftModel)
	next, cmd := m.Update(key("s"))
	m = next.(DraftModel)
	assert.Nil(t, cmd)
	assert.Equal(t, "Add at least one item.", m.status)
}

func TestDraftModel_BillRejectsCustomItems(t *testing.T) {
	draft := document.Draft{
		Kind:  document.KindBill,
		Items: []document.LineItem{{ID: "a", ProductID: &riceID, Name: "Rice", Quantity: 1, UnitPrice: decimal.NewFromInt(60)}},
	}

	m := NewDraftModelFrom(document.NewService(nil), nil, nil, uuid.New(), draft)
	assert.Equal(t, "Walk-in", m.draft.Customer.Name)
	assert.Equal(t, document.PaymentCash, m.draft.PaymentMethod)
	assert.Equal(t, document.PaymentPaid, m.draft.PaymentStatus)

	next, _ := m.Update(key("a"))
	m = next.(DraftModel)
	assert.Equal(t, draftStateItems, m.state)
	assert.Equal(t, "Bills can only contain catalog products.", m.status)
}

func TestDraftModel_SaveResult(t *testing.T) {
	draft := document.Draft{
		Kind:  document.KindBill,
		Items: []document.LineItem{{ID: "a", ProductID: &riceID, Name: "Rice", Quantity: 5, UnitPrice: decimal.NewFromInt(60)}},
	}

	m := NewDraftModelFrom(document.NewService(nil), nil, nil, uuid.New(), draft)

	next, _ := m.Update(draftProductsMsg{products: []*catalog.Product{rice}})
	m = next.(DraftModel)
	assert.Contains(t, m.View(), "only 3 left")

	next, _ = m.Update(draftSavedMsg{err: &document.StockError{ProductID: riceID, Item: "Rice", Requested: 5}})
	m = next.(DraftModel)
	assert.Equal(t, draftStateItems, m.state)
	assert.Equal(t, 5, m.draft.Items[0].Quantity)
	assert.Contains(t, m.View(), "Not enough stock for Rice")

	saved := &document.Document{Number: "BILL-000007", Kind: document.KindBill, Items: draft.Items}
	next, _ = m.Update(draftSavedMsg{doc: saved})
	m = next.(DraftModel)
	assert.Equal(t, draftStateSaved, m.state)
	assert.Contains(t, m.View(), "Saved BILL-000007")
}
