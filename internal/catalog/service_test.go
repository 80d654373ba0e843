package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
)

var ownerID = uuid.MustParse("0d2f7a1c-5b7e-4f43-8f8a-2f1e3b9c6d10")

func TestService_Create(t *testing.T) {
	type args struct {
		params catalog.CreateParams
	}

	type testCase struct {
		name        string
		args        args
		setupMock   func(repo *catalog.MockRepository, codes *catalog.MockCodeGenerator)
		wantBarcode string
		wantErr     error
	}

	tests := []testCase{
		{
			name: "Generates Barcode",
			args: args{params: catalog.CreateParams{Name: " Basmati Rice 1kg ", Price: decimal.NewFromInt(120), Stock: 40}},
			setupMock: func(repo *catalog.MockRepository, codes *catalog.MockCodeGenerator) {
				codes.EXPECT().Barcode().Return("BC1234")
				repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *catalog.Product) error {
						assert.Equal(t, "Basmati Rice 1kg", p.Name)
						assert.Equal(t, ownerID, p.OwnerID)
						p.ID = uuid.New()
						return nil
					})
			},
			wantBarcode: "BC1234",
		},
		{
			name: "Keeps Given Barcode",
			args: args{params: catalog.CreateParams{Name: "Soap", Barcode: "8901030865278"}},
			setupMock: func(repo *catalog.MockRepository, _ *catalog.MockCodeGenerator) {
				repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantBarcode: "8901030865278",
		},
		{
			name:    "Missing Name",
			args:    args{params: catalog.CreateParams{Name: "  "}},
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:    "Negative Price",
			args:    args{params: catalog.CreateParams{Name: "Soap", Price: decimal.NewFromInt(-1)}},
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name:    "Negative Stock",
			args:    args{params: catalog.CreateParams{Name: "Soap", Stock: -2}},
			wantErr: catalog.ErrInvalidProduct,
		},
		{
			name: "Duplicate Code",
			args: args{params: catalog.CreateParams{Name: "Soap", Barcode: "dup"}},
			setupMock: func(repo *catalog.MockRepository, _ *catalog.MockCodeGenerator) {
				repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(catalog.ErrDuplicateCode)
			},
			wantErr: catalog.ErrDuplicateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			codes := catalog.NewMockCodeGenerator(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, codes)
			}

			svc := catalog.NewService(repo, codes)
			got, err := svc.Create(context.Background(), ownerID, tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBarcode, got.Barcode)
		})
	}
}

func TestService_AdjustStock(t *testing.T) {
	productID := uuid.New()

	type testCase struct {
		name      string
		adj       catalog.Adjustment
		setupMock func(m *catalog.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Purchase",
			adj:  catalog.Adjustment{ProductID: productID, Delta: 10, Reason: catalog.ReasonPurchase},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().AdjustStock(gomock.Any(), ownerID, catalog.Adjustment{
					ProductID: productID, Delta: 10, Reason: catalog.ReasonPurchase, ReferenceType: "manual",
				}).Return(&catalog.Movement{ProductID: productID, Delta: 10, StockBefore: 2, StockAfter: 12}, nil)
			},
		},
		{
			name: "Would Go Negative",
			adj:  catalog.Adjustment{ProductID: productID, Delta: -50, Reason: catalog.ReasonAdjustment},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().AdjustStock(gomock.Any(), ownerID, gomock.Any()).Return(nil, catalog.ErrInsufficientStock)
			},
			wantErr: catalog.ErrInsufficientStock,
		},
		{
			name:    "Zero Delta",
			adj:     catalog.Adjustment{ProductID: productID, Reason: catalog.ReasonPurchase},
			wantErr: catalog.ErrInvalidAdjustment,
		},
		{
			name:    "Sales Only Through Bills",
			adj:     catalog.Adjustment{ProductID: productID, Delta: -1, Reason: catalog.ReasonSale},
			wantErr: catalog.ErrInvalidAdjustment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := catalog.NewService(repo, nil)
			m, err := svc.AdjustStock(context.Background(), ownerID, tt.adj)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 12, m.StockAfter)
		})
	}
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	codes := catalog.NewMockCodeGenerator(ctrl)
	codes.EXPECT().Barcode().Return("BC1").Times(2)
	repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(2)).Return(nil)

	svc := catalog.NewService(repo, codes)
	got, err := svc.Import(context.Background(), ownerID, []catalog.CreateParams{
		{Name: "Tea", Price: decimal.NewFromInt(80)},
		{Name: "Coffee", Price: decimal.NewFromInt(150)},
	})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Import_InvalidRowAbortsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)

	svc := catalog.NewService(repo, nil)
	_, err := svc.Import(context.Background(), ownerID, []catalog.CreateParams{
		{Name: "Tea"},
		{Name: ""},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
	assert.True(t, strings.HasPrefix(err.Error(), "product 2:"))
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	svc := catalog.NewService(repo, nil)

	err := svc.Update(context.Background(), &catalog.Product{Name: ""})
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)

	err = svc.Update(context.Background(), &catalog.Product{Name: "Tea"})
	assert.EqualError(t, err, "db error")
}

func TestProduct(t *testing.T) {
	p := &catalog.Product{Price: decimal.RequireFromString("12.50"), Stock: 4, MinStock: 5}

	assert.True(t, p.LowStock())
	assert.Equal(t, "50.00", p.StockValue().StringFixed(2))
	assert.Equal(t, catalog.UncategorizedLabel, p.CategoryLabel())

	p.Category = "Grocery"
	assert.Equal(t, "Grocery", p.CategoryLabel())
}

func TestBarcodeGenerator(t *testing.T) {
	gen, err := catalog.NewBarcodeGenerator(1)
	require.NoError(t, err)

	a, b := gen.Barcode(), gen.Barcode()
	assert.True(t, strings.HasPrefix(a, "BC"))
	assert.NotEqual(t, a, b)

	_, err = catalog.NewBarcodeGenerator(5000)
	assert.Error(t, err)
}
