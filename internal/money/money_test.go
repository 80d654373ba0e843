package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Plain", input: "12.50", want: "12.5"},
		{name: "Thousands Comma", input: "1,234.56", want: "1234.56"},
		{name: "European", input: "1.234,56", want: "1234.56"},
		{name: "Decimal Comma", input: "12,5", want: "12.5"},
		{name: "Currency Symbol", input: "₹ 499", want: "499"},
		{name: "Negative", input: "-10,00", want: "-10"},
		{name: "Empty", input: "", wantErr: true},
		{name: "Letters Only", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestClampRate(t *testing.T) {
	assert.True(t, money.ClampRate(decimal.NewFromInt(-5)).IsZero())
	assert.Equal(t, "100", money.ClampRate(decimal.NewFromInt(150)).String())
	assert.Equal(t, "18", money.ClampRate(decimal.NewFromInt(18)).String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "40.50", money.Format(decimal.RequireFromString("40.5")))
	assert.Equal(t, "0.33", money.Format(money.Round(decimal.NewFromInt(1).Div(decimal.NewFromInt(3)))))
}
