package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/export"
)

type fakeLister struct {
	docs   []*document.Document
	err    error
	filter document.ListFilter
}

func (f *fakeLister) List(_ context.Context, _ uuid.UUID, filter document.ListFilter) ([]*document.Document, error) {
	f.filter = filter
	return f.docs, f.err
}

func sampleDocs() []*document.Document {
	productID := uuid.MustParse("5f0c6f0e-1111-4a8e-9c39-7d2f0e4b9a01")

	items := []document.LineItem{
		{Name: "Rice", ProductID: &productID, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{Name: "Tea, Masala", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
	}

	invoice := &document.Document{
		Number:   "INV-000001",
		Kind:     document.KindInvoice,
		Date:     time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		Customer: document.Customer{Name: "Asha"},
		Items:    items,
		Tax:      document.Adjustment{Enabled: true, Rate: decimal.NewFromInt(18)},
	}
	invoice.Totals = document.ComputeTotals(items, invoice.Discount, invoice.Tax).Rounded()

	bill := &document.Document{
		Number:        "BILL-000001",
		Kind:          document.KindBill,
		Date:          time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC),
		PaymentMethod: document.PaymentUPI,
		PaymentStatus: document.PaymentPaid,
	}

	return []*document.Document{invoice, bill}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestService_Export(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	lister := &fakeLister{docs: sampleDocs()}
	svc := export.NewService(lister)

	items, err := svc.Export(context.Background(), uuid.New(), document.ListFilter{StartDate: &start}, dir)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, &start, lister.filter.StartDate)
	assert.Equal(t, 2, items[0].Lines)
	assert.Equal(t, 0, items[1].Lines)

	docs := readCSV(t, filepath.Join(dir, export.DocumentsFile))
	require.Len(t, docs, 3)
	assert.Equal(t, "number", docs[0][0])
	assert.Equal(t, []string{"INV-000001", "invoice", "2026-03-18", "Asha"}, docs[1][:4])
	assert.Equal(t, "295.00", docs[1][12])
	assert.Equal(t, "upi", docs[2][13])

	lines := readCSV(t, filepath.Join(dir, export.LineItemsFile))
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"INV-000001", "1", "Rice", "5f0c6f0e-1111-4a8e-9c39-7d2f0e4b9a01", "2", "100.00", "200.00"}, lines[1])
	assert.Equal(t, "Tea, Masala", lines[2][2])
	assert.Empty(t, lines[2][3])
}

func TestService_Export_ListError(t *testing.T) {
	svc := export.NewService(&fakeLister{err: errors.New("db down")})

	_, err := svc.Export(context.Background(), uuid.New(), document.ListFilter{}, t.TempDir())
	assert.ErrorContains(t, err, "db down")
}

func TestService_GenerateSummary(t *testing.T) {
	svc := export.NewService(nil)

	docs := sampleDocs()
	got := svc.GenerateSummary([]export.Item{
		{Document: docs[0], Lines: 2},
		{Document: docs[1]},
	})

	want := "* 2026-03-18 | INV-000001 | Asha | 295.00 | 2 item(s)\n" +
		"* 2026-03-19 | BILL-000001 | Walk-in | 0.00 | 0 item(s)\n"
	assert.Equal(t, want, got)
}

func TestWriteArchive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, export.SummaryFile), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, export.DocumentsFile), []byte("number\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	var buf bytes.Buffer
	require.NoError(t, export.WriteArchive(&buf, dir))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.ElementsMatch(t, []string{export.SummaryFile, export.DocumentsFile}, names)
	assert.False(t, strings.Contains(strings.Join(names, ","), "nested"))
}
