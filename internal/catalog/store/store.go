package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectProductColumns = `
	id, owner_id, name, description, category, brand, price, cost_price, stock, min_stock,
	unit, sku, barcode, created_at, updated_at
`

// scanProduct expects the columns of selectProductColumns, in order.
func scanProduct(s scanner) (*catalog.Product, error) {
	var p catalog.Product

	var sku, barcode sql.NullString

	if err := s.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Category, &p.Brand,
		&p.Price, &p.CostPrice, &p.Stock, &p.MinStock,
		&p.Unit, &sku, &barcode, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.SKU = sku.String
	p.Barcode = barcode.String

	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func insertProduct(ctx context.Context, q Querier, p *catalog.Product) error {
	query := `
		INSERT INTO products (owner_id, name, description, category, brand, price, cost_price,
			stock, min_stock, unit, sku, barcode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		p.OwnerID, p.Name, p.Description, p.Category, p.Brand, p.Price, p.CostPrice,
		p.Stock, p.MinStock, p.Unit, nullable(p.SKU), nullable(p.Barcode),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("creating product %q: %w", p.Name, catalog.ErrDuplicateCode)
		}

		return fmt.Errorf("creating product: %w", err)
	}

	if p.Stock == 0 {
		return nil
	}

	return insertMovement(ctx, q, &catalog.Movement{
		OwnerID:       p.OwnerID,
		ProductID:     p.ID,
		Reason:        catalog.ReasonPurchase,
		Delta:         p.Stock,
		StockBefore:   0,
		StockAfter:    p.Stock,
		ReferenceType: "opening",
		Note:          "Opening stock",
	})
}

func (s *Store) CreateProduct(ctx context.Context, p *catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertProduct(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateProducts(ctx context.Context, products []*catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		if err := insertProduct(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, ownerID uuid.UUID, filter catalog.ListFilter) ([]*catalog.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE owner_id = $1 AND deleted_at IS NULL`

	args := []any{ownerID}
	argIdx := 2

	if c := strings.TrimSpace(filter.Category); c != "" {
		if c == catalog.UncategorizedLabel {
			query += " AND category = ''"
		} else {
			query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", argIdx)

			args = append(args, c)
			argIdx++
		}
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%[1]d OR brand ILIKE $%[1]d OR sku ILIKE $%[1]d OR barcode ILIKE $%[1]d)`, argIdx)

		args = append(args, "%"+q+"%")
		argIdx++
	}

	if filter.LowStockOnly {
		query += " AND stock <= min_stock"
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, brand = $4, price = $5, cost_price = $6,
			min_stock = $7, unit = $8, sku = $9, barcode = $10, updated_at = NOW()
		WHERE id = $11 AND owner_id = $12 AND deleted_at IS NULL
		RETURNING stock, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Category, p.Brand, p.Price, p.CostPrice,
		p.MinStock, p.Unit, nullable(p.SKU), nullable(p.Barcode),
		p.ID, p.OwnerID,
	).Scan(&p.Stock, &p.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return catalog.ErrNotFound
		case database.IsUniqueViolation(err):
			return fmt.Errorf("updating product %q: %w", p.Name, catalog.ErrDuplicateCode)
		}

		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE products
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}

	return nil
}

func (s *Store) AdjustStock(ctx context.Context, ownerID uuid.UUID, adj catalog.Adjustment) (*catalog.Movement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	m, err := ApplyAdjustment(ctx, tx, ownerID, adj)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return m, nil
}

// ApplyAdjustment changes a product's stock and records the movement using q, which
// is normally the caller's transaction. The update only applies when the resulting
// stock is not negative; otherwise catalog.ErrInsufficientStock is returned.
func ApplyAdjustment(ctx context.Context, q Querier, ownerID uuid.UUID, adj catalog.Adjustment) (*catalog.Movement, error) {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL AND stock + $1 >= 0
		RETURNING stock
	`

	var after int

	err := q.QueryRowContext(ctx, query, adj.Delta, adj.ProductID, ownerID).Scan(&after)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("adjusting stock: %w", err)
		}

		var exists bool
		if err := q.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL)`,
			adj.ProductID, ownerID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("checking product: %w", err)
		}

		if !exists {
			return nil, fmt.Errorf("product %s: %w", adj.ProductID, catalog.ErrNotFound)
		}

		return nil, fmt.Errorf("product %s: %w", adj.ProductID, catalog.ErrInsufficientStock)
	}

	m := &catalog.Movement{
		OwnerID:       ownerID,
		ProductID:     adj.ProductID,
		Reason:        adj.Reason,
		Delta:         adj.Delta,
		StockBefore:   after - adj.Delta,
		StockAfter:    after,
		ReferenceType: adj.ReferenceType,
		ReferenceID:   adj.ReferenceID,
		Note:          adj.Note,
	}

	if err := insertMovement(ctx, q, m); err != nil {
		return nil, err
	}

	return m, nil
}

func insertMovement(ctx context.Context, q Querier, m *catalog.Movement) error {
	query := `
		INSERT INTO inventory_movements (owner_id, product_id, reason, delta, stock_before, stock_after,
			reference_type, reference_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		m.OwnerID, m.ProductID, m.Reason, m.Delta, m.StockBefore, m.StockAfter,
		m.ReferenceType, m.ReferenceID, m.Note,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording movement: %w", err)
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, ownerID, productID uuid.UUID) ([]*catalog.Movement, error) {
	query := `
		SELECT id, owner_id, product_id, reason, delta, stock_before, stock_after,
			reference_type, reference_id, note, created_at
		FROM inventory_movements
		WHERE owner_id = $1 AND product_id = $2
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, productID)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*catalog.Movement

	for rows.Next() {
		var m catalog.Movement

		var reason string

		if err := rows.Scan(
			&m.ID, &m.OwnerID, &m.ProductID, &reason, &m.Delta, &m.StockBefore, &m.StockAfter,
			&m.ReferenceType, &m.ReferenceID, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		m.Reason = catalog.Reason(reason)
		movements = append(movements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movements: %w", err)
	}

	return movements, nil
}
