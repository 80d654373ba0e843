package document_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

func TestDraft_UnmarshalJSON_Date(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    time.Time
		wantErr bool
	}{
		{
			name: "Calendar Day",
			body: `{"kind":"invoice","date":"2026-03-18"}`,
			want: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Timestamp",
			body: `{"kind":"invoice","date":"2026-03-18T09:15:00+05:30"}`,
			want: time.Date(2026, 3, 18, 3, 45, 0, 0, time.UTC),
		},
		{
			name: "Missing",
			body: `{"kind":"invoice"}`,
		},
		{
			name:    "Garbage",
			body:    `{"kind":"invoice","date":"18/03/2026"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d document.Draft
			err := json.Unmarshal([]byte(tt.body), &d)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, document.KindInvoice, d.Kind)
			assert.True(t, tt.want.Equal(d.Date), "got %s", d.Date)
		})
	}
}

func TestService_Save_CalendarDayInOwnerZone(t *testing.T) {
	kolkata := time.FixedZone("Asia/Kolkata", 5*3600+30*60)

	var draft document.Draft
	require.NoError(t, json.Unmarshal([]byte(`{
		"kind": "invoice",
		"date": "2026-03-18",
		"vendor": {"name": "Sharma Traders"},
		"customer": {"name": "Asha"},
		"items": [{"name": "Pen", "quantity": 1, "unit_price": "10"}]
	}`), &draft))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := document.NewMockRepository(ctrl)
	stx := document.NewMockSaveTx(ctrl)
	locs := document.NewMockLocationSource(ctrl)

	locs.EXPECT().Location(gomock.Any(), ownerID).Return(kolkata, nil)
	repo.EXPECT().BeginSave(gomock.Any(), ownerID).Return(stx, nil)
	stx.EXPECT().NextNumber(gomock.Any(), document.KindInvoice).Return(int64(1), nil)
	stx.EXPECT().InsertDocument(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	svc := document.NewService(repo, document.WithLocationSource(locs), document.WithClock(clock))
	doc, err := svc.Save(context.Background(), ownerID, draft)
	require.NoError(t, err)

	assert.True(t, doc.Date.Equal(time.Date(2026, 3, 18, 0, 0, 0, 0, kolkata)), "got %s", doc.Date)
	assert.NotEqual(t, uuid.Nil, doc.ID)
}
