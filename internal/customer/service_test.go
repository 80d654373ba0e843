package customer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/customer"
	"github.com/MrJamesThe3rd/billbook/internal/document"
)

var ownerID = uuid.MustParse("6b4e2f38-21d4-4c0f-9a77-3c2f58e1d0aa")

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Trims", in: "  Asha  ", want: "asha"},
		{name: "Collapses Inner Space", in: "Asha   Traders", want: "asha traders"},
		{name: "Folds Case", in: "ASHA Traders", want: "asha traders"},
		{name: "Blank", in: " \t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, customer.NormalizeName(tt.in))
		})
	}
}

func TestService_Remember(t *testing.T) {
	type testCase struct {
		name      string
		snapshot  document.Customer
		setupMock func(m *customer.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:     "Upserts By Name Key",
			snapshot: document.Customer{Name: "  Asha Traders ", Phone: "98450 00000"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Upsert(gomock.Any(), gomock.Any(), "asha traders").
					DoAndReturn(func(_ context.Context, c *customer.Customer, _ string) error {
						assert.Equal(t, "Asha Traders", c.Name)
						assert.Equal(t, "98450 00000", c.Phone)
						assert.Equal(t, ownerID, c.OwnerID)
						assert.NotNil(t, c.LastUsedAt)
						return nil
					})
			},
		},
		{
			name:     "Blank Name Is Ignored",
			snapshot: document.Customer{Name: "   ", Phone: "123"},
		},
		{
			name:     "Store Error",
			snapshot: document.Customer{Name: "Ravi"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().Upsert(gomock.Any(), gomock.Any(), "ravi").Return(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			err := svc.Remember(context.Background(), ownerID, tt.snapshot)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), "asha").Return(nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), "ravi").Return(customer.ErrDuplicate)

	svc := customer.NewService(repo)

	got, err := svc.Create(context.Background(), ownerID, customer.CreateParams{Name: " Asha ", Email: "asha@example.com "})
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "asha@example.com", got.Email)

	_, err = svc.Create(context.Background(), ownerID, customer.CreateParams{Name: "Ravi"})
	assert.ErrorIs(t, err, customer.ErrDuplicate)

	_, err = svc.Create(context.Background(), ownerID, customer.CreateParams{})
	assert.ErrorIs(t, err, customer.ErrInvalid)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), "asha traders").Return(nil)

	svc := customer.NewService(repo)

	c := &customer.Customer{ID: uuid.New(), OwnerID: ownerID, Name: " Asha  Traders"}
	require.NoError(t, svc.Update(context.Background(), c))
	assert.Equal(t, "Asha  Traders", c.Name)

	assert.ErrorIs(t, svc.Update(context.Background(), &customer.Customer{}), customer.ErrInvalid)
}

func TestService_List_TrimsQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), ownerID, "asha").Return([]*customer.Customer{{Name: "Asha"}}, nil)

	svc := customer.NewService(repo)

	got, err := svc.List(context.Background(), ownerID, "  asha ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
