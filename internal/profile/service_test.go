package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/profile"
)

var ownerID = uuid.MustParse("a3c4d1f0-7e52-4c8b-b1d9-5c0f1e2a3b4c")

func TestService_Save(t *testing.T) {
	type testCase struct {
		name      string
		profile   profile.Profile
		setupMock func(m *profile.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "Applies Defaults",
			profile: profile.Profile{OwnerID: ownerID, Name: " Sharma Stores "},
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *profile.Profile) error {
						assert.Equal(t, "Sharma Stores", p.Name)
						assert.Equal(t, profile.DefaultTimezone, p.Timezone)
						assert.Equal(t, profile.DefaultCurrency, p.Currency)
						return nil
					})
			},
		},
		{
			name:    "Missing Name",
			profile: profile.Profile{OwnerID: ownerID},
			wantErr: profile.ErrInvalid,
		},
		{
			name:    "Unknown Timezone",
			profile: profile.Profile{OwnerID: ownerID, Name: "Shop", Timezone: "Mars/Olympus"},
			wantErr: profile.ErrInvalid,
		},
		{
			name:    "Bad Email",
			profile: profile.Profile{OwnerID: ownerID, Name: "Shop", Email: "not-an-email"},
			wantErr: profile.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := profile.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := profile.NewService(repo)
			err := svc.Save(context.Background(), &tt.profile)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Vendor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := profile.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), ownerID).Return(&profile.Profile{Name: "Sharma Stores", UPIID: "sharma@upi"}, nil),
		repo.EXPECT().Get(gomock.Any(), ownerID).Return(nil, profile.ErrNotFound),
		repo.EXPECT().Get(gomock.Any(), ownerID).Return(nil, assert.AnError),
	)

	svc := profile.NewService(repo)

	v, err := svc.Vendor(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, document.Vendor{Name: "Sharma Stores", UPIID: "sharma@upi"}, v)

	v, err = svc.Vendor(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, v.Name)

	_, err = svc.Vendor(context.Background(), ownerID)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestProfile_Location(t *testing.T) {
	p := &profile.Profile{Timezone: "Asia/Kolkata"}
	assert.Equal(t, "Asia/Kolkata", p.Location().String())

	p.Timezone = "Nowhere/Special"
	assert.Equal(t, time.UTC, p.Location())
}
