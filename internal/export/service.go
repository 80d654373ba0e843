package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

const (
	DocumentsFile = "documents.csv"
	LineItemsFile = "line_items.csv"
	SummaryFile   = "summary.txt"
)

// Item represents a single exported document.
type Item struct {
	Document *document.Document
	Lines    int
}

type DocumentLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filter document.ListFilter) ([]*document.Document, error)
}

// Service exports an owner's documents as CSV files.
type Service struct {
	documents DocumentLister
}

func NewService(documents DocumentLister) *Service {
	return &Service{documents: documents}
}

var documentHeader = []string{
	"number", "kind", "date", "customer", "customer_phone", "customer_email",
	"subtotal", "discount_rate", "discount_amount", "taxable_amount", "tax_rate", "tax_amount",
	"grand_total", "payment_method", "payment_status", "notes",
}

var lineItemHeader = []string{"number", "line", "name", "product_id", "quantity", "unit_price", "total"}

// Export writes documents.csv and line_items.csv for documents matching the filter into
// outputDir and returns one item per document.
func (s *Service) Export(ctx context.Context, ownerID uuid.UUID, filter document.ListFilter, outputDir string) ([]Item, error) {
	docs, err := s.documents.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	docRows := make([][]string, 0, len(docs)+1)
	docRows = append(docRows, documentHeader)

	lineRows := [][]string{lineItemHeader}

	items := make([]Item, 0, len(docs))

	for _, doc := range docs {
		t := doc.Totals

		docRows = append(docRows, []string{
			doc.Number,
			string(doc.Kind),
			doc.Date.Format("2006-01-02"),
			doc.Customer.Name,
			doc.Customer.Phone,
			doc.Customer.Email,
			money.Format(t.Subtotal),
			money.Format(t.DiscountRate),
			money.Format(t.DiscountAmount),
			money.Format(t.TaxableAmount),
			money.Format(t.TaxRate),
			money.Format(t.TaxAmount),
			money.Format(t.GrandTotal),
			string(doc.PaymentMethod),
			string(doc.PaymentStatus),
			doc.Notes,
		})

		for i, li := range doc.Items {
			productID := ""
			if li.ProductID != nil {
				productID = li.ProductID.String()
			}

			lineRows = append(lineRows, []string{
				doc.Number,
				strconv.Itoa(i + 1),
				li.Name,
				productID,
				strconv.Itoa(li.EffectiveQuantity()),
				money.Format(li.EffectivePrice()),
				money.Format(li.Total()),
			})
		}

		items = append(items, Item{Document: doc, Lines: len(doc.Items)})
	}

	if err := writeCSV(filepath.Join(outputDir, DocumentsFile), docRows); err != nil {
		return nil, err
	}

	if err := writeCSV(filepath.Join(outputDir, LineItemsFile), lineRows); err != nil {
		return nil, err
	}

	return items, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return f.Close()
}

// GenerateSummary renders one line per exported document.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		doc := item.Document

		customer := doc.Customer.Name
		if customer == "" {
			customer = "Walk-in"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %d item(s)\n",
			doc.Date.Format("2006-01-02"), doc.Number, customer, money.Format(doc.Totals.GrandTotal), item.Lines)
	}

	return sb.String()
}

// WriteArchive zips every regular file in dir into w.
func WriteArchive(w io.Writer, dir string) error {
	zw := zip.NewWriter(w)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading export directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		if err := addFile(zw, dir, entry.Name()); err != nil {
			return err
		}
	}

	return zw.Close()
}

func addFile(zw *zip.Writer, dir, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}

	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}
