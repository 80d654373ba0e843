package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

var (
	ErrNotFound = errors.New("profile not found")
	ErrInvalid  = errors.New("invalid profile")
)

const (
	DefaultTimezone = "UTC"
	DefaultCurrency = "INR"
)

// Profile holds the business details printed on every document.
type Profile struct {
	OwnerID   uuid.UUID  `json:"-"`
	Name      string     `json:"name" validate:"required"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	Email     string     `json:"email" validate:"omitempty,email"`
	GSTIN     string     `json:"gstin"`
	UPIID     string     `json:"upi_id"`
	LogoURL   string     `json:"logo_url" validate:"omitempty,url"`
	Footer    string     `json:"footer"`
	Timezone  string     `json:"timezone" validate:"required,timezone"`
	Currency  string     `json:"currency" validate:"required,len=3"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Vendor is the snapshot copied into new documents.
func (p *Profile) Vendor() document.Vendor {
	return document.Vendor{
		Name:    p.Name,
		Phone:   p.Phone,
		Address: p.Address,
		Email:   p.Email,
		GSTIN:   p.GSTIN,
		UPIID:   p.UPIID,
		Footer:  p.Footer,
	}
}

// Location is the owner's calendar. Unknown zones fall back to UTC.
func (p *Profile) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil || p.Timezone == "" {
		return time.UTC
	}

	return loc
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=profile
type Repository interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (s *Service) Get(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	return s.repo.Get(ctx, ownerID)
}

// Save creates or replaces the owner's profile.
func (s *Service) Save(ctx context.Context, p *Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	if p.Timezone == "" {
		p.Timezone = DefaultTimezone
	}

	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}

	if err := s.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", ErrInvalid, verrs[0].Field(), verrs[0].Tag())
		}

		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return s.repo.Save(ctx, p)
}

// Vendor returns the owner's vendor snapshot; an owner without a profile gets an empty one.
func (s *Service) Vendor(ctx context.Context, ownerID uuid.UUID) (document.Vendor, error) {
	p, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return document.Vendor{}, nil
		}

		return document.Vendor{}, err
	}

	return p.Vendor(), nil
}

// Location returns the owner's time zone, UTC when no profile exists.
func (s *Service) Location(ctx context.Context, ownerID uuid.UUID) (*time.Location, error) {
	p, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.UTC, nil
		}

		return nil, err
	}

	return p.Location(), nil
}
