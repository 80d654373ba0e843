package importer

// field is a product attribute a CSV column can map to.
type field int

const (
	fieldName field = iota
	fieldDescription
	fieldCategory
	fieldBrand
	fieldPrice
	fieldCostPrice
	fieldStock
	fieldMinStock
	fieldUnit
	fieldSKU
	fieldBarcode
)

// Profile describes the column layout of a product CSV format.
// Header names are matched case-insensitively after trimming.
type Profile struct {
	Name     string
	Columns  map[field]string
	Required []field
	// SkipNameless ignores rows without a name instead of failing,
	// for exports that continue a product over several rows.
	SkipNameless bool
}

// requiredCols returns the header names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := make([]string, 0, len(p.Required))
	for _, f := range p.Required {
		cols = append(cols, p.Columns[f])
	}

	return cols
}

// profiles is tried in order during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name: "shopify",
		Columns: map[field]string{
			fieldName:        "title",
			fieldDescription: "body (html)",
			fieldCategory:    "type",
			fieldBrand:       "vendor",
			fieldPrice:       "variant price",
			fieldCostPrice:   "cost per item",
			fieldStock:       "variant inventory qty",
			fieldSKU:         "variant sku",
			fieldBarcode:     "variant barcode",
		},
		Required:     []field{fieldName, fieldPrice, fieldSKU},
		SkipNameless: true,
	},
	{
		Name: "billbook",
		Columns: map[field]string{
			fieldName:        "name",
			fieldDescription: "description",
			fieldCategory:    "category",
			fieldBrand:       "brand",
			fieldPrice:       "price",
			fieldCostPrice:   "cost_price",
			fieldStock:       "stock",
			fieldMinStock:    "min_stock",
			fieldUnit:        "unit",
			fieldSKU:         "sku",
			fieldBarcode:     "barcode",
		},
		Required: []field{fieldName, fieldPrice, fieldStock},
	},
	{
		Name: "simple",
		Columns: map[field]string{
			fieldName:  "product",
			fieldPrice: "price",
			fieldStock: "quantity",
		},
		Required: []field{fieldName, fieldPrice},
	},
}

// ProfileNames lists the supported formats in detection order.
func ProfileNames() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return names
}
