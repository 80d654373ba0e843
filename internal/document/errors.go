package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a document does not exist for the owner or was deleted.
	ErrNotFound = errors.New("document not found")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid document")

	// ErrDuplicateNumber is returned when a document number is already taken for the owner.
	ErrDuplicateNumber = errors.New("document number already in use")

	// ErrNotShareable is returned when sharing anything other than an invoice.
	ErrNotShareable = errors.New("only invoices can be shared")

	// ErrShareNotFound is returned for unknown or revoked share tokens.
	ErrShareNotFound = errors.New("share link not found")

	// ErrShareExpired is returned for share tokens past their expiry.
	ErrShareExpired = errors.New("share link expired")

	// ErrTemplateNotFound is returned when a template does not exist for the owner.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateTemplate is returned when the owner already has a template with that name.
	ErrDuplicateTemplate = errors.New("template name already in use")

	// ErrBuiltinTemplate is returned when deleting one of the built-in templates.
	ErrBuiltinTemplate = errors.New("built-in templates cannot be deleted")
)

// FieldError describes one rejected draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in a draft.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return "invalid document: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SaveError wraps a persistence failure while saving a document.
// The draft is left untouched so the caller can retry.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saving document: %s: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// StockError is returned when a bill asks for more stock than is available.
// The whole bill is rejected.
type StockError struct {
	ProductID uuid.UUID
	Item      string
	Requested int
	Err       error
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (product %s, requested %d): %v",
		e.Item, e.ProductID, e.Requested, e.Err)
}

func (e *StockError) Unwrap() error {
	return e.Err
}
