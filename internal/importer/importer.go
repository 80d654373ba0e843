package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
)

var ErrUnknownFormat = errors.New("unknown format")

type Importer interface {
	Parse(r io.Reader) ([]catalog.CreateParams, error)
}

type Service struct {
	parser Importer
}

func NewService() *Service {
	return &Service{
		parser: NewParser(),
	}
}

// Import parses a product CSV. An empty format auto-detects the layout.
func (s *Service) Import(format string, r io.Reader) ([]catalog.CreateParams, error) {
	if format == "" {
		return s.parser.Parse(r)
	}

	for i := range profiles {
		if profiles[i].Name == format {
			return NewParser(WithProfile(profiles[i])).Parse(r)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
