package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateAdjust
	inventoryStateCreate
)

type InventoryModel struct {
	CommonModel
	catalogService *catalog.Service
	ownerID        uuid.UUID

	state    inventoryState
	table    table.Model
	products []*catalog.Product
	form     *huh.Form

	filter  catalog.ListFilter
	loading bool
	err     error
	status  string

	// Stock adjustment bindings
	formDelta  string
	formReason catalog.Reason
	formNote   string

	// New product bindings
	formName     string
	formCategory string
	formPrice    string
	formStock    string
	formMinStock string
	formSKU      string
}

func NewInventoryModel(catalogSvc *catalog.Service, ownerID uuid.UUID) InventoryModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Category", Width: 16},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 7},
		{Title: "Min", Width: 5},
		{Title: "Value", Width: 12},
		{Title: "SKU", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InventoryModel{
		catalogService: catalogSvc,
		ownerID:        ownerID,
		table:          t,
		loading:        true,
	}
}

func (m InventoryModel) Title() string { return "Inventory" }

func (m InventoryModel) ShortHelp() string {
	if m.state != inventoryStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: adjust stock | n: new product | l: low stock | r: refresh"
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadProductsCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.products = msg.products
		m.refreshTable()

		return m, nil

	case inventorySaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = inventoryStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadProductsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == inventoryStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadProductsCmd()
		case "l":
			m.filter.LowStockOnly = !m.filter.LowStockOnly
			return m, m.loadProductsCmd()
		case "a":
			return m.enterAdjustMode()
		case "n":
			return m.enterCreateMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InventoryModel) selected() *catalog.Product {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return nil
	}

	return m.products[idx]
}

func (m InventoryModel) enterAdjustMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formDelta = ""
	m.formReason = catalog.ReasonPurchase
	m.formNote = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("delta").
				Title("Change").
				Description("Units to add, negative to remove").
				Value(&m.formDelta).
				Validate(validateDelta),

			huh.NewSelect[catalog.Reason]().
				Key("reason").
				Title("Reason").
				Options(
					huh.NewOption("Purchase", catalog.ReasonPurchase),
					huh.NewOption("Return", catalog.ReasonReturn),
					huh.NewOption("Correction", catalog.ReasonAdjustment),
				).
				Value(&m.formReason),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&m.formNote),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateAdjust
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName, m.formCategory, m.formSKU = "", "", ""
	m.formPrice, m.formStock, m.formMinStock = "", "0", "0"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Key("category").Title("Category").Value(&m.formCategory),
			huh.NewInput().Key("price").Title("Price").Value(&m.formPrice).Validate(validatePrice),
			huh.NewInput().Key("stock").Title("Opening stock").Value(&m.formStock).Validate(validateCount),
			huh.NewInput().Key("min_stock").Title("Reorder level").Value(&m.formMinStock).Validate(validateCount),
			huh.NewInput().Key("sku").Title("SKU").Value(&m.formSKU),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = inventoryStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == inventoryStateCreate {
		cmd = m.createCmd()
	} else {
		cmd = m.adjustCmd()
	}

	m.state = inventoryStateBrowse
	m.form = nil
	m.status = "Saving..."
	m.table.Focus()

	return m, cmd
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	stockLabel := "All"
	if m.filter.LowStockOnly {
		stockLabel = "Low stock"
	}

	header := fmt.Sprintf("Filter: [l] Stock: %s | %d product(s)", accentStyle.Render(stockLabel), len(m.products))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != inventoryStateBrowse && m.form != nil {
		title := "New Product"
		if m.state == inventoryStateAdjust {
			if p := m.selected(); p != nil {
				title = fmt.Sprintf("Adjust Stock\n\n%s: %d on hand", p.Name, p.Stock)
			}
		}

		panel := panelStyle.Padding(1, 2).Width(48).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InventoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		stock := strconv.Itoa(p.Stock)
		if p.LowStock() {
			stock += "!"
		}

		rows = append(rows, table.Row{
			p.Name,
			p.CategoryLabel(),
			FormatAmount(p.Price),
			stock,
			strconv.Itoa(p.MinStock),
			FormatAmount(p.StockValue()),
			p.SKU,
		})
	}

	m.table.SetRows(rows)
}

func validateDelta(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}

	if n == 0 {
		return errors.New("change cannot be zero")
	}

	return nil
}

func validatePrice(s string) error {
	d, err := money.Parse(s)
	if err != nil {
		return errors.New("enter an amount like 12.50")
	}

	if d.IsNegative() {
		return errors.New("price cannot be negative")
	}

	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter zero or a positive whole number")
	}

	return nil
}

// Messages

type loadProductsMsg struct {
	products []*catalog.Product
	err      error
}

func (m InventoryModel) loadProductsCmd() tea.Cmd {
	filter := m.filter
	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.catalogService.List(ctx, ownerID, filter)
		return loadProductsMsg{products: products, err: err}
	}
}

type inventorySaveMsg struct {
	status string
	err    error
}

func (m InventoryModel) adjustCmd() tea.Cmd {
	p := m.selected()
	if p == nil {
		return nil
	}

	delta, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("delta")))
	reason, _ := m.form.Get("reason").(catalog.Reason)

	adj := catalog.Adjustment{
		ProductID:     p.ID,
		Delta:         delta,
		Reason:        reason,
		ReferenceType: "manual",
		Note:          strings.TrimSpace(m.form.GetString("note")),
	}
	ownerID := m.ownerID
	name := p.Name

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mv, err := m.catalogService.AdjustStock(ctx, ownerID, adj)
		if err != nil {
			return inventorySaveMsg{err: err}
		}

		return inventorySaveMsg{status: fmt.Sprintf("%s: %d -> %d", name, mv.StockBefore, mv.StockAfter)}
	}
}

func (m InventoryModel) createCmd() tea.Cmd {
	price, _ := money.Parse(m.form.GetString("price"))
	stock, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("stock")))
	minStock, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("min_stock")))

	params := catalog.CreateParams{
		Name:     strings.TrimSpace(m.form.GetString("name")),
		Category: strings.TrimSpace(m.form.GetString("category")),
		Price:    price,
		Stock:    stock,
		MinStock: minStock,
		SKU:      strings.TrimSpace(m.form.GetString("sku")),
	}
	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.catalogService.Create(ctx, ownerID, params)
		if err != nil {
			return inventorySaveMsg{err: err}
		}

		return inventorySaveMsg{status: fmt.Sprintf("Added %s (%s)", p.Name, p.Barcode)}
	}
}
