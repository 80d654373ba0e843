package product_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/auth"
	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	handler "github.com/MrJamesThe3rd/billbook/internal/http/product"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

var ownerID = uuid.MustParse("9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b")

func serve(t *testing.T, repo catalog.Repository, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	codes := catalog.NewMockCodeGenerator(ctrl)
	codes.EXPECT().Barcode().Return("7000000000001").AnyTimes()

	r := chi.NewRouter()
	r.Route("/products", handler.NewHandler(catalog.NewService(repo, codes), importer.NewService()).Routes)

	req = req.WithContext(auth.WithOwner(req.Context(), ownerID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *catalog.MockRepository)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name:   "Create Assigns Barcode",
			method: http.MethodPost,
			target: "/products",
			body:   `{"name":"Rice 1kg","price":"60","stock":10,"min_stock":3}`,
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "7000000000001", body["barcode"])
				assert.Equal(t, "60.00", body["price"])
				assert.Equal(t, "600.00", body["stock_value"])
				assert.Equal(t, catalog.UncategorizedLabel, body["category"])
			},
		},
		{
			name:       "Create Negative Price",
			method:     http.MethodPost,
			target:     "/products",
			body:       `{"name":"Rice","price":"-1"}`,
			setupMock:  func(*catalog.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "Create Duplicate SKU",
			method: http.MethodPost,
			target: "/products",
			body:   `{"name":"Rice","price":"60","sku":"R1"}`,
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(catalog.ErrDuplicateCode)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "List Low Stock",
			method: http.MethodGet,
			target: "/products?low_stock=true&category=Grocery",
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().ListProducts(gomock.Any(), ownerID, catalog.ListFilter{Category: "Grocery", LowStockOnly: true}).
					Return([]*catalog.Product{{ID: id, Name: "Rice", Stock: 1, MinStock: 3}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Update Leaves Stock",
			method: http.MethodPatch,
			target: "/products/" + id.String(),
			body:   `{"price":"75","stock":999}`,
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().GetProduct(gomock.Any(), ownerID, id).Return(&catalog.Product{ID: id, Name: "Rice", Price: decimal.NewFromInt(60), Stock: 4}, nil)
				m.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *catalog.Product) error {
					assert.Equal(t, "75", p.Price.String())
					assert.Equal(t, 4, p.Stock)
					return nil
				})
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(4), body["stock"])
			},
		},
		{
			name:   "Adjust Stock",
			method: http.MethodPost,
			target: "/products/" + id.String() + "/stock",
			body:   `{"delta":12,"reason":"purchase","note":"weekly order"}`,
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().AdjustStock(gomock.Any(), ownerID, catalog.Adjustment{
					ProductID:     id,
					Delta:         12,
					Reason:        catalog.ReasonPurchase,
					ReferenceType: "manual",
					Note:          "weekly order",
				}).Return(&catalog.Movement{ProductID: id, Delta: 12, StockBefore: 4, StockAfter: 16, Reason: catalog.ReasonPurchase}, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(16), body["stock_after"])
			},
		},
		{
			name:       "Adjust Stock As Sale",
			method:     http.MethodPost,
			target:     "/products/" + id.String() + "/stock",
			body:       `{"delta":-1,"reason":"sale"}`,
			setupMock:  func(*catalog.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "Adjust Below Zero",
			method: http.MethodPost,
			target: "/products/" + id.String() + "/stock",
			body:   `{"delta":-50,"reason":"adjustment"}`,
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().AdjustStock(gomock.Any(), ownerID, gomock.Any()).Return(nil, catalog.ErrInsufficientStock)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "Movements",
			method: http.MethodGet,
			target: "/products/" + id.String() + "/movements",
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().ListMovements(gomock.Any(), ownerID, id).Return([]*catalog.Movement{{Delta: -2}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Delete Missing",
			method: http.MethodDelete,
			target: "/products/" + id.String(),
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().DeleteProduct(gomock.Any(), ownerID, id).Return(catalog.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := serve(t, repo, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.check != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.check(t, body)
			}
		})
	}
}

func uploadRequest(t *testing.T, format, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if format != "" {
		require.NoError(t, mw.WriteField("format", format))
	}

	fw, err := mw.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Import(t *testing.T) {
	t.Run("Imports Every Row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := catalog.NewMockRepository(ctrl)
		repo.EXPECT().CreateProducts(gomock.Any(), gomock.Len(2)).Return(nil)

		rec := serve(t, repo, uploadRequest(t, "", "name,price,stock\nPen,10,5\nPencil,5,\n"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(2), body["imported"])
	})

	t.Run("Bad Row Imports Nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := serve(t, catalog.NewMockRepository(ctrl), uploadRequest(t, "", "name,price\nPen,abc\n"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 2")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := serve(t, catalog.NewMockRepository(ctrl), uploadRequest(t, "excel", "name,price\nPen,1\n"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing File", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/products/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := serve(t, catalog.NewMockRepository(ctrl), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
