package profile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/auth"
	handler "github.com/MrJamesThe3rd/billbook/internal/http/profile"
	"github.com/MrJamesThe3rd/billbook/internal/profile"
)

var ownerID = uuid.MustParse("5c4b3a29-1807-4f6e-9d5c-4b3a29180706")

func TestHandler(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		body       string
		setupMock  func(m *profile.MockRepository)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name:   "Get Missing",
			method: http.MethodGet,
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().Get(gomock.Any(), ownerID).Return(nil, profile.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "Save Applies Defaults",
			method: http.MethodPut,
			body:   `{"name":" Sharma Traders ","gstin":"29ABCDE1234F1Z5"}`,
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *profile.Profile) error {
					assert.Equal(t, ownerID, p.OwnerID)
					return nil
				})
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Sharma Traders", body["name"])
				assert.Equal(t, profile.DefaultTimezone, body["timezone"])
				assert.Equal(t, profile.DefaultCurrency, body["currency"])
				assert.NotContains(t, body, "OwnerID")
			},
		},
		{
			name:       "Save Bad Timezone",
			method:     http.MethodPut,
			body:       `{"name":"Sharma Traders","timezone":"Mars/Olympus"}`,
			setupMock:  func(*profile.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := profile.NewMockRepository(ctrl)
			tt.setupMock(repo)

			r := chi.NewRouter()
			r.Route("/profile", handler.NewHandler(profile.NewService(repo)).Routes)

			req := httptest.NewRequest(tt.method, "/profile", strings.NewReader(tt.body))
			req = req.WithContext(auth.WithOwner(req.Context(), ownerID))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.check != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.check(t, body)
			}
		})
	}
}
