package customer_test

import (
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
	"github.com/MrJamesThe3rd/billbook/internal/customer"
	handler "github.com/MrJamesThe3rd/billbook/internal/http/customer"
)

var ownerID = uuid.MustParse("3a9d2f4e-6b1c-4d8e-9f0a-7b6c5d4e3f21")

func serve(repo customer.Repository, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/customers", handler.NewHandler(customer.NewService(repo)).Routes)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
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
		setupMock  func(m *customer.MockRepository)
		wantStatus int
		wantName   string
	}

	tests := []testCase{
		{
			name:   "Create",
			method: http.MethodPost,
			target: "/customers",
			body:   `{"name":"  Asha Rao ","phone":"98450 00000"}`,
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any(), "asha rao").Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantName:   "Asha Rao",
		},
		{
			name:   "Create Duplicate",
			method: http.MethodPost,
			target: "/customers",
			body:   `{"name":"Asha"}`,
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any(), "asha").Return(customer.ErrDuplicate)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Create Without Name",
			method:     http.MethodPost,
			target:     "/customers",
			body:       `{"name":"   "}`,
			setupMock:  func(*customer.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "Update Keeps Unsent Fields",
			method: http.MethodPatch,
			target: "/customers/" + id.String(),
			body:   `{"name":"Asha R"}`,
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Get(gomock.Any(), ownerID, id).Return(&customer.Customer{ID: id, OwnerID: ownerID, Name: "Asha", Phone: "123"}, nil)
				m.EXPECT().Update(gomock.Any(), &customer.Customer{ID: id, OwnerID: ownerID, Name: "Asha R", Phone: "123"}, "asha r").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantName:   "Asha R",
		},
		{
			name:   "Get Missing",
			method: http.MethodGet,
			target: "/customers/" + id.String(),
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Get(gomock.Any(), ownerID, id).Return(nil, customer.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			target: "/customers/" + id.String(),
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Delete(gomock.Any(), ownerID, id).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := serve(repo, tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantName != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantName, body["name"])
			}
		})
	}
}

func TestHandler_ListPassesQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), ownerID, "asha").Return([]*customer.Customer{{Name: "Asha"}, {Name: "Asha Rao"}}, nil)

	rec := serve(repo, http.MethodGet, "/customers?q=+asha+", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}
