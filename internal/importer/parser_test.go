package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

func TestParser_Billbook(t *testing.T) {
	csv := `name,category,brand,price,cost_price,stock,min_stock,unit,sku,barcode
Basmati Rice 1kg,Grocery,India Gate,120.00,95.50,40,10,kg,RICE-1,8901030865278
"Tea, Masala 250g",Beverages,,"1,250.00",,12,,pack,,
`

	got, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Basmati Rice 1kg", got[0].Name)
	assert.Equal(t, "Grocery", got[0].Category)
	assert.Equal(t, "India Gate", got[0].Brand)
	assert.Equal(t, "120.00", got[0].Price.StringFixed(2))
	assert.Equal(t, "95.50", got[0].CostPrice.StringFixed(2))
	assert.Equal(t, 40, got[0].Stock)
	assert.Equal(t, 10, got[0].MinStock)
	assert.Equal(t, "kg", got[0].Unit)
	assert.Equal(t, "RICE-1", got[0].SKU)
	assert.Equal(t, "8901030865278", got[0].Barcode)

	assert.Equal(t, "Tea, Masala 250g", got[1].Name)
	assert.Equal(t, "1250.00", got[1].Price.StringFixed(2))
	assert.True(t, got[1].CostPrice.IsZero())
	assert.Empty(t, got[1].Barcode)
}

func TestParser_Shopify(t *testing.T) {
	csv := `Handle,Title,Body (HTML),Vendor,Type,Variant SKU,Variant Inventory Qty,Variant Price,Cost per item,Variant Barcode
green-tea,Green Tea,<p>Loose leaf</p>,Chaayos,Beverages,GT-100,25,349.00,210.00,
green-tea,,,,,GT-250,8,799.00,,
`

	got, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Green Tea", got[0].Name)
	assert.Equal(t, "Chaayos", got[0].Brand)
	assert.Equal(t, "Beverages", got[0].Category)
	assert.Equal(t, "GT-100", got[0].SKU)
	assert.Equal(t, 25, got[0].Stock)
	assert.Equal(t, "349.00", got[0].Price.StringFixed(2))
	assert.Equal(t, "210.00", got[0].CostPrice.StringFixed(2))
}

func TestParser_SimpleSemicolonDecimalComma(t *testing.T) {
	csv := `Exported from till
Product;Price;Quantity
Kaffee;1.234,50;3
Tee;4,99;
`

	got, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Kaffee", got[0].Name)
	assert.Equal(t, "1234.50", got[0].Price.StringFixed(2))
	assert.Equal(t, 3, got[0].Stock)
	assert.Equal(t, "4.99", got[1].Price.StringFixed(2))
	assert.Zero(t, got[1].Stock)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "product;price\nCafé Crème;12,50\n"

	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	got, err := importer.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Café Crème", got[0].Name)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Price,Ignored,Product
10.00,x,Pencil
`

	got, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Pencil", got[0].Name)
	assert.Equal(t, "10.00", got[0].Price.StringFixed(2))
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{name: "Empty File", csv: "", wantErr: "no matching product format"},
		{name: "Unknown Header", csv: "foo,bar\n1,2\n", wantErr: "no matching product format"},
		{name: "Missing Name", csv: "product,price\n,10\n", wantErr: "row 2: missing name"},
		{name: "Bad Price", csv: "product,price\nPen,abc\nPencil,1\n", wantErr: "row 2: price"},
		{name: "Negative Price", csv: "product,price\nPen,1\nPencil,-1\n", wantErr: "row 3: price"},
		{name: "Fractional Stock", csv: "product,price,quantity\nPen,1,2.5\n", wantErr: "row 2: stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := "product,price\nPen,1\n,,\nPencil,2\n"

	got, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParser_HeaderOnly(t *testing.T) {
	got, err := importer.NewParser().Parse(strings.NewReader("name,price,stock"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	csv := "name,price,stock\nPen,1,2\n"

	got, err := svc.Import("", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pen", got[0].Name)
	assert.True(t, decimal.NewFromInt(1).Equal(got[0].Price))
	assert.Equal(t, 2, got[0].Stock)

	_, err = svc.Import("simple", strings.NewReader(csv))
	assert.ErrorIs(t, err, importer.ErrNoProfile)

	_, err = svc.Import("excel", strings.NewReader(csv))
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)

	assert.Equal(t, []string{"shopify", "billbook", "simple"}, importer.ProfileNames())
}
