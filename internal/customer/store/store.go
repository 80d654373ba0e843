package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/customer"
	"github.com/MrJamesThe3rd/billbook/internal/database"
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

const selectCustomerColumns = `
	id, owner_id, name, phone, email, address, last_used_at, created_at, updated_at
`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	if err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.LastUsedAt, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) Upsert(ctx context.Context, c *customer.Customer, nameKey string) error {
	query := `
		INSERT INTO customers (owner_id, name, name_key, phone, email, address, last_used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (owner_id, name_key) DO UPDATE SET last_used_at = EXCLUDED.last_used_at
		RETURNING ` + selectCustomerColumns

	stored, err := scanCustomer(s.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, nameKey, c.Phone, c.Email, c.Address, c.LastUsedAt))
	if err != nil {
		return fmt.Errorf("upserting customer: %w", err)
	}

	*c = *stored

	return nil
}

func (s *Store) Create(ctx context.Context, c *customer.Customer, nameKey string) error {
	query := `
		INSERT INTO customers (owner_id, name, name_key, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, nameKey, c.Phone, c.Email, c.Address,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customer.ErrDuplicate
		}

		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, ownerID, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers WHERE id = $1 AND owner_id = $2`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) List(ctx context.Context, ownerID uuid.UUID, search string) ([]*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers WHERE owner_id = $1`
	args := []any{ownerID}

	if search != "" {
		query += ` AND (name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)`

		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY last_used_at DESC NULLS LAST, name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}

func (s *Store) Update(ctx context.Context, c *customer.Customer, nameKey string) error {
	query := `
		UPDATE customers
		SET name = $1, name_key = $2, phone = $3, email = $4, address = $5, updated_at = NOW()
		WHERE id = $6 AND owner_id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, nameKey, c.Phone, c.Email, c.Address, c.ID, c.OwnerID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return customer.ErrNotFound
		case database.IsUniqueViolation(err):
			return customer.ErrDuplicate
		}

		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return customer.ErrNotFound
	}

	return nil
}
