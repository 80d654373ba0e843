package analytics_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/analytics"
	"github.com/MrJamesThe3rd/billbook/internal/auth"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	handler "github.com/MrJamesThe3rd/billbook/internal/http/analytics"
)

var ownerID = uuid.MustParse("1d2c3b4a-5968-4a7b-8c9d-0e1f2a3b4c5d")

func TestHandler_Report(t *testing.T) {
	day := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name       string
		target     string
		setupMock  func(docs *analytics.MockDocumentLister, locs *analytics.MockLocationSource)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Weekly",
			target: "/analytics?bucket=week&top=3&start_date=2026-03-01",
			setupMock: func(docs *analytics.MockDocumentLister, locs *analytics.MockLocationSource) {
				start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
				locs.EXPECT().Location(gomock.Any(), ownerID).Return(time.UTC, nil)
				docs.EXPECT().List(gomock.Any(), ownerID, document.ListFilter{StartDate: &start}).Return([]*document.Document{
					{
						Kind:     document.KindInvoice,
						Date:     day,
						Customer: document.Customer{Name: "Asha"},
						Totals:   document.Totals{GrandTotal: decimal.NewFromInt(100)},
					},
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Unknown Bucket",
			target:     "/analytics?bucket=year",
			setupMock:  func(*analytics.MockDocumentLister, *analytics.MockLocationSource) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Bad Top",
			target:     "/analytics?top=0",
			setupMock:  func(*analytics.MockDocumentLister, *analytics.MockLocationSource) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Listing Fails",
			target: "/analytics",
			setupMock: func(docs *analytics.MockDocumentLister, locs *analytics.MockLocationSource) {
				locs.EXPECT().Location(gomock.Any(), ownerID).Return(time.UTC, nil)
				docs.EXPECT().List(gomock.Any(), ownerID, gomock.Any()).Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			docs := analytics.NewMockDocumentLister(ctrl)
			locs := analytics.NewMockLocationSource(ctrl)
			tt.setupMock(docs, locs)

			r := chi.NewRouter()
			r.Route("/analytics", handler.NewHandler(analytics.NewService(docs, nil, locs)).Routes)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req = req.WithContext(auth.WithOwner(req.Context(), ownerID))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusOK {
				return
			}

			var report analytics.Report
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			require.Len(t, report.Periods, 1)
			assert.Equal(t, "2026-W12", report.Periods[0].Label)
			require.Len(t, report.TopCustomers, 1)
			assert.Equal(t, "Asha", report.TopCustomers[0].Name)
		})
	}
}
