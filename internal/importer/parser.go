package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	enc "github.com/MrJamesThe3rd/billbook/internal/encoding"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

var ErrNoProfile = errors.New("no matching product format found")

// Parser reads product CSV exports and produces catalog create params.
// Unless a profile is forced, it detects the layout by matching the header
// row against known profiles.
type Parser struct {
	forced *Profile
}

type ParserOption func(*Parser)

// WithProfile disables detection and reads files with p.
func WithProfile(p Profile) ParserOption {
	return func(pr *Parser) { pr.forced = &p }
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := p.detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("%w: expected columns for %s", ErrNoProfile, strings.Join(ProfileNames(), ", "))
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks the separator that occurs most in the first line
// containing any of them. Files without one are read as comma separated.
func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))

	for sc.Scan() {
		line := sc.Text()

		best, bestCount := ',', strings.Count(line, ",")
		for _, c := range []rune{';', '\t'} {
			if n := strings.Count(line, string(c)); n > bestCount {
				best, bestCount = c, n
			}
		}

		if bestCount > 0 {
			return best
		}
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a profile.
// Returns the matched profile, column index map, and header row index.
func (p *Parser) detectProfile(rows [][]string) (*Profile, colIndex, int) {
	candidates := profiles
	if p.forced != nil {
		candidates = []Profile{*p.forced}
	}

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, seen := cols[name]; name != "" && !seen {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts products from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]catalog.CreateParams, error) {
	cell := func(row []string, f field) string {
		name, ok := p.Columns[f]
		if !ok {
			return ""
		}

		idx, ok := cols[name]
		if !ok {
			return ""
		}

		return cellValue(row, idx)
	}

	var products []catalog.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		if blank(row) {
			continue
		}

		name := cell(row, fieldName)
		if name == "" {
			if p.SkipNameless {
				continue
			}

			return nil, fmt.Errorf("row %d: missing name", rowNum)
		}

		price, err := parseAmount(cell(row, fieldPrice))
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", rowNum, err)
		}

		cost, err := parseAmount(cell(row, fieldCostPrice))
		if err != nil {
			return nil, fmt.Errorf("row %d: cost price: %w", rowNum, err)
		}

		stock, err := parseCount(cell(row, fieldStock))
		if err != nil {
			return nil, fmt.Errorf("row %d: stock: %w", rowNum, err)
		}

		minStock, err := parseCount(cell(row, fieldMinStock))
		if err != nil {
			return nil, fmt.Errorf("row %d: min stock: %w", rowNum, err)
		}

		products = append(products, catalog.CreateParams{
			Name:        name,
			Description: cell(row, fieldDescription),
			Category:    cell(row, fieldCategory),
			Brand:       cell(row, fieldBrand),
			Price:       price,
			CostPrice:   cost,
			Stock:       stock,
			MinStock:    minStock,
			Unit:        cell(row, fieldUnit),
			SKU:         cell(row, fieldSKU),
			Barcode:     cell(row, fieldBarcode),
		})
	}

	return products, nil
}

// parseAmount reads an optional non-negative amount; empty cells are zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, err
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}

	return d, nil
}

// parseCount reads an optional non-negative whole number; empty cells are zero.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative number %q", s)
	}

	return n, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
