package document

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const shareTokenBytes = 32

func newShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Share creates a read-only link for an invoice.
func (s *Service) Share(ctx context.Context, ownerID, id uuid.UUID) (*Share, error) {
	doc, err := s.repo.GetDocument(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if doc.Kind != KindInvoice {
		return nil, ErrNotShareable
	}

	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("generating share token: %w", err)
	}

	now := s.now()

	share := &Share{
		Token:      token,
		DocumentID: doc.ID,
		Active:     true,
		CreatedAt:  now,
	}

	if s.shareTTL > 0 {
		share.ExpiresAt = new(now.Add(s.shareTTL))
	}

	if err := s.repo.CreateShare(ctx, share); err != nil {
		return nil, fmt.Errorf("creating share: %w", err)
	}

	return share, nil
}

// ResolveShare returns the invoice behind a share token. Unknown, revoked and
// deleted targets yield ErrShareNotFound; expired links yield ErrShareExpired.
func (s *Service) ResolveShare(ctx context.Context, token string) (*Document, error) {
	if token == "" {
		return nil, ErrShareNotFound
	}

	share, err := s.repo.GetShare(ctx, token)
	if err != nil {
		return nil, err
	}

	if !share.Active {
		return nil, ErrShareNotFound
	}

	if share.Expired(s.now()) {
		return nil, ErrShareExpired
	}

	doc, err := s.repo.GetSharedDocument(ctx, share.DocumentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrShareNotFound
		}

		return nil, err
	}

	return doc, nil
}
