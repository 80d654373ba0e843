package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

var (
	ErrNotFound  = errors.New("customer not found")
	ErrDuplicate = errors.New("customer already exists")
	ErrInvalid   = errors.New("invalid customer")
)

// Customer is a buyer known to the business.
type Customer struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Phone      string
	Email      string
	Address    string
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	// Upsert inserts c unless a customer with the same name key exists, in which case
	// only the last-used time is refreshed. Stored contact details are never replaced.
	Upsert(ctx context.Context, c *Customer, nameKey string) error
	Create(ctx context.Context, c *Customer, nameKey string) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)
	List(ctx context.Context, ownerID uuid.UUID, query string) ([]*Customer, error)
	Update(ctx context.Context, c *Customer, nameKey string) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

var folder = cases.Fold()

// NormalizeName is the key used to decide whether two names are the same customer:
// surrounding and repeated whitespace is ignored and letter case is folded.
func NormalizeName(name string) string {
	return folder.String(strings.Join(strings.Fields(name), " "))
}

// Remember records the customer of a saved document if it is new to the owner.
func (s *Service) Remember(ctx context.Context, ownerID uuid.UUID, snapshot document.Customer) error {
	key := NormalizeName(snapshot.Name)
	if key == "" {
		return nil
	}

	c := &Customer{
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(snapshot.Name),
		Phone:      strings.TrimSpace(snapshot.Phone),
		Email:      strings.TrimSpace(snapshot.Email),
		Address:    strings.TrimSpace(snapshot.Address),
		LastUsedAt: new(s.now()),
	}

	return s.repo.Upsert(ctx, c, key)
}

type CreateParams struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Customer, error) {
	key := NormalizeName(params.Name)
	if key == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	c := &Customer{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(params.Name),
		Phone:   strings.TrimSpace(params.Phone),
		Email:   strings.TrimSpace(params.Email),
		Address: strings.TrimSpace(params.Address),
	}

	if err := s.repo.Create(ctx, c, key); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// List returns the owner's customers; query matches name, phone or email.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, query string) ([]*Customer, error) {
	return s.repo.List(ctx, ownerID, strings.TrimSpace(query))
}

func (s *Service) Update(ctx context.Context, c *Customer) error {
	key := NormalizeName(c.Name)
	if key == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	c.Name = strings.TrimSpace(c.Name)

	return s.repo.Update(ctx, c, key)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
