package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/billbook/internal/catalog/store"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDocumentColumns = `
	d.id, d.owner_id, d.kind, d.number, d.date, d.vendor, d.customer, d.items,
	d.discount_enabled, d.discount_rate, d.tax_enabled, d.tax_rate,
	d.subtotal, d.discount_amount, d.taxable_amount, d.tax_amount, d.grand_total,
	d.notes, d.payment_method, d.payment_status, d.created_at, d.deleted_at
`

// scanDocument expects the columns of selectDocumentColumns, in order.
func scanDocument(s scanner) (*document.Document, error) {
	var doc document.Document

	var kind, method, status string

	var vendor, customer, items []byte

	t := &doc.Totals

	if err := s.Scan(
		&doc.ID, &doc.OwnerID, &kind, &doc.Number, &doc.Date, &vendor, &customer, &items,
		&doc.Discount.Enabled, &doc.Discount.Rate, &doc.Tax.Enabled, &doc.Tax.Rate,
		&t.Subtotal, &t.DiscountAmount, &t.TaxableAmount, &t.TaxAmount, &t.GrandTotal,
		&doc.Notes, &method, &status, &doc.CreatedAt, &doc.DeletedAt,
	); err != nil {
		return nil, err
	}

	doc.Kind = document.Kind(kind)
	doc.PaymentMethod = document.PaymentMethod(method)
	doc.PaymentStatus = document.PaymentStatus(status)

	if doc.Discount.Enabled {
		t.DiscountRate = money.ClampRate(doc.Discount.Rate)
	}

	if doc.Tax.Enabled {
		t.TaxRate = money.ClampRate(doc.Tax.Rate)
	}

	if err := json.Unmarshal(vendor, &doc.Vendor); err != nil {
		return nil, fmt.Errorf("decoding vendor: %w", err)
	}

	if err := json.Unmarshal(customer, &doc.Customer); err != nil {
		return nil, fmt.Errorf("decoding customer: %w", err)
	}

	if err := json.Unmarshal(items, &doc.Items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	return &doc, nil
}

func (s *Store) GetDocument(ctx context.Context, ownerID, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + `
		FROM documents d
		WHERE d.id = $1 AND d.owner_id = $2 AND d.deleted_at IS NULL`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return doc, nil
}

// GetSharedDocument loads a document by ID alone, for share link resolution.
func (s *Store) GetSharedDocument(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + `
		FROM documents d
		WHERE d.id = $1 AND d.deleted_at IS NULL`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting shared document: %w", err)
	}

	return doc, nil
}

func (s *Store) ListDocuments(ctx context.Context, ownerID uuid.UUID, filter document.ListFilter) ([]*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + `
		FROM documents d
		WHERE d.owner_id = $1 AND d.deleted_at IS NULL`

	args := []any{ownerID}
	argIdx := 2

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND d.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		query += fmt.Sprintf(" AND (d.number ILIKE $%[1]d OR d.customer_name ILIKE $%[1]d)", argIdx)

		args = append(args, "%"+q+"%")
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND d.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND d.date < $%d", argIdx)

		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		argIdx++
	}

	query += " ORDER BY d.date DESC, d.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument soft-deletes a document. With restock, every item that references a
// product is put back into stock as a return, in the same transaction.
func (s *Store) DeleteDocument(ctx context.Context, ownerID, id uuid.UUID, restock bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE documents
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		RETURNING number, items
	`

	var number string

	var raw []byte

	if err := tx.QueryRowContext(ctx, query, id, ownerID).Scan(&number, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return document.ErrNotFound
		}

		return fmt.Errorf("deleting document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE shared_links SET is_active = FALSE WHERE document_id = $1`, id,
	); err != nil {
		return fmt.Errorf("revoking share links: %w", err)
	}

	if restock {
		var items []document.LineItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("decoding items: %w", err)
		}

		for _, item := range items {
			if item.ProductID == nil {
				continue
			}

			_, err := catalogStore.ApplyAdjustment(ctx, tx, ownerID, catalog.Adjustment{
				ProductID:     *item.ProductID,
				Delta:         item.EffectiveQuantity(),
				Reason:        catalog.ReasonReturn,
				ReferenceType: string(document.KindBill),
				ReferenceID:   new(id),
				Note:          "Restocked from deleted bill " + number,
			})
			if err != nil && !errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("restocking: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateShare(ctx context.Context, share *document.Share) error {
	query := `
		INSERT INTO shared_links (token, document_id, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		share.Token, share.DocumentID, share.ExpiresAt, share.Active, share.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating share: %w", err)
	}

	return nil
}

func (s *Store) GetShare(ctx context.Context, token string) (*document.Share, error) {
	query := `
		SELECT token, document_id, expires_at, is_active, created_at
		FROM shared_links
		WHERE token = $1
	`

	var share document.Share

	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&share.Token, &share.DocumentID, &share.ExpiresAt, &share.Active, &share.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrShareNotFound
		}

		return nil, fmt.Errorf("getting share: %w", err)
	}

	return &share, nil
}

type saveTx struct {
	tx      *sql.Tx
	ownerID uuid.UUID
}

func (s *Store) BeginSave(ctx context.Context, ownerID uuid.UUID) (document.SaveTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning save tx: %w", err)
	}

	return &saveTx{tx: dbTx, ownerID: ownerID}, nil
}

func (stx *saveTx) Commit() error   { return stx.tx.Commit() }
func (stx *saveTx) Rollback() error { return stx.tx.Rollback() }

// NextNumber increments the owner's counter for kind. The counter row stays locked
// until the transaction ends, so concurrent saves are numbered one after another.
func (stx *saveTx) NextNumber(ctx context.Context, kind document.Kind) (int64, error) {
	query := `
		INSERT INTO document_counters (owner_id, kind, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (owner_id, kind) DO UPDATE SET last_value = document_counters.last_value + 1
		RETURNING last_value
	`

	var seq int64
	if err := stx.tx.QueryRowContext(ctx, query, stx.ownerID, kind).Scan(&seq); err != nil {
		return 0, fmt.Errorf("allocating number: %w", err)
	}

	return seq, nil
}

func (stx *saveTx) InsertDocument(ctx context.Context, doc *document.Document) error {
	vendor, err := json.Marshal(doc.Vendor)
	if err != nil {
		return fmt.Errorf("encoding vendor: %w", err)
	}

	customer, err := json.Marshal(doc.Customer)
	if err != nil {
		return fmt.Errorf("encoding customer: %w", err)
	}

	items, err := json.Marshal(doc.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query := `
		INSERT INTO documents (id, owner_id, kind, number, date, vendor, customer, customer_name, items,
			discount_enabled, discount_rate, tax_enabled, tax_rate,
			subtotal, discount_amount, taxable_amount, tax_amount, grand_total,
			notes, payment_method, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW())
		RETURNING created_at
	`

	t := doc.Totals

	err = stx.tx.QueryRowContext(ctx, query,
		doc.ID, doc.OwnerID, doc.Kind, doc.Number, doc.Date,
		string(vendor), string(customer), doc.Customer.Name, string(items),
		doc.Discount.Enabled, doc.Discount.Rate, doc.Tax.Enabled, doc.Tax.Rate,
		t.Subtotal, t.DiscountAmount, t.TaxableAmount, t.TaxAmount, t.GrandTotal,
		doc.Notes, doc.PaymentMethod, doc.PaymentStatus,
	).Scan(&doc.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("inserting %s: %w", doc.Number, document.ErrDuplicateNumber)
		}

		return fmt.Errorf("inserting document: %w", err)
	}

	return nil
}

func (stx *saveTx) AdjustStock(ctx context.Context, adj catalog.Adjustment) error {
	_, err := catalogStore.ApplyAdjustment(ctx, stx.tx, stx.ownerID, adj)
	return err
}

func (s *Store) CreateTemplate(ctx context.Context, t *document.Template) error {
	preset, err := json.Marshal(t.Preset)
	if err != nil {
		return fmt.Errorf("encoding preset: %w", err)
	}

	query := `
		INSERT INTO document_templates (id, owner_id, name, preset, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.db.ExecContext(ctx, query,
		t.ID, t.OwnerID, t.Name, string(preset), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return document.ErrDuplicateTemplate
		}

		return fmt.Errorf("creating template: %w", err)
	}

	return nil
}

const selectTemplateColumns = `id, owner_id, name, preset, created_at, updated_at`

func scanTemplate(s scanner) (*document.Template, error) {
	var t document.Template

	var preset []byte

	if err := s.Scan(&t.ID, &t.OwnerID, &t.Name, &preset, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(preset, &t.Preset); err != nil {
		return nil, fmt.Errorf("decoding preset: %w", err)
	}

	return &t, nil
}

func (s *Store) GetTemplate(ctx context.Context, ownerID, id uuid.UUID) (*document.Template, error) {
	query := `SELECT ` + selectTemplateColumns + `
		FROM document_templates
		WHERE id = $1 AND owner_id = $2`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrTemplateNotFound
		}

		return nil, fmt.Errorf("getting template: %w", err)
	}

	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]*document.Template, error) {
	query := `SELECT ` + selectTemplateColumns + `
		FROM document_templates
		WHERE owner_id = $1
		ORDER BY LOWER(name)`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*document.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}

	return templates, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM document_templates WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}

	if n == 0 {
		return document.ErrTemplateNotFound
	}

	return nil
}
