// Package app wires stores and services for the binaries.
package app

import (
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/billbook/internal/analytics"
	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/billbook/internal/catalog/store"
	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/customer"
	customerStore "github.com/MrJamesThe3rd/billbook/internal/customer/store"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	documentStore "github.com/MrJamesThe3rd/billbook/internal/document/store"
	"github.com/MrJamesThe3rd/billbook/internal/export"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
	"github.com/MrJamesThe3rd/billbook/internal/profile"
	profileStore "github.com/MrJamesThe3rd/billbook/internal/profile/store"
)

type Services struct {
	Documents *document.Service
	Catalog   *catalog.Service
	Customers *customer.Service
	Profiles  *profile.Service
	Analytics *analytics.Service
	Importer  *importer.Service
	Export    *export.Service
}

func New(cfg *config.Config, db *sql.DB) (*Services, error) {
	barcodes, err := catalog.NewBarcodeGenerator(cfg.Catalog.NodeID)
	if err != nil {
		return nil, fmt.Errorf("creating barcode generator: %w", err)
	}

	var (
		profileService  = profile.NewService(profileStore.New(db))
		customerService = customer.NewService(customerStore.New(db))
		catalogService  = catalog.NewService(catalogStore.New(db), barcodes)
		documentService = document.NewService(documentStore.New(db),
			document.WithCustomerBook(customerService),
			document.WithVendorSource(profileService),
			document.WithLocationSource(profileService),
			document.WithShareTTL(cfg.Share.TTL),
		)
	)

	return &Services{
		Documents: documentService,
		Catalog:   catalogService,
		Customers: customerService,
		Profiles:  profileService,
		Analytics: analytics.NewService(documentService, catalogService, profileService),
		Importer:  importer.NewService(),
		Export:    export.NewService(documentService),
	}, nil
}
