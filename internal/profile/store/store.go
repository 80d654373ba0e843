package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT owner_id, name, phone, address, email, gstin, upi_id, logo_url, footer,
			timezone, currency, created_at, updated_at
		FROM profiles
		WHERE owner_id = $1
	`

	var p profile.Profile

	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&p.OwnerID, &p.Name, &p.Phone, &p.Address, &p.Email, &p.GSTIN, &p.UPIID, &p.LogoURL, &p.Footer,
		&p.Timezone, &p.Currency, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &p, nil
}

func (s *Store) Save(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (owner_id, name, phone, address, email, gstin, upi_id, logo_url, footer,
			timezone, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			email = EXCLUDED.email,
			gstin = EXCLUDED.gstin,
			upi_id = EXCLUDED.upi_id,
			logo_url = EXCLUDED.logo_url,
			footer = EXCLUDED.footer,
			timezone = EXCLUDED.timezone,
			currency = EXCLUDED.currency,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Name, p.Phone, p.Address, p.Email, p.GSTIN, p.UPIID, p.LogoURL, p.Footer,
		p.Timezone, p.Currency,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	return nil
}
