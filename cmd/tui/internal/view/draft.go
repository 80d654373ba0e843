package view

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/customer"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/money"
)

type draftState int

const (
	draftStateCustomer draftState = iota
	draftStateItems
	draftStatePicker
	draftStateItemForm
	draftStateAdjustForm
	draftStateSaving
	draftStateSaved
)

// productItem wraps a catalog product to implement list.Item.
type productItem struct {
	p *catalog.Product
}

func (i productItem) Title() string { return i.p.Name }

func (i productItem) Description() string {
	desc := fmt.Sprintf("%s | stock %d", FormatAmount(i.p.Price), i.p.Stock)
	if i.p.SKU != "" {
		desc += " | " + i.p.SKU
	}

	return desc
}

func (i productItem) FilterValue() string {
	return i.p.Name + " " + i.p.SKU + " " + i.p.Barcode
}

// DraftModel edits a new invoice or bill until it is saved.
type DraftModel struct {
	CommonModel
	docService      *document.Service
	catalogService  *catalog.Service
	customerService *customer.Service
	ownerID         uuid.UUID

	state  draftState
	draft  document.Draft
	cursor int
	form   *huh.Form
	picker list.Model

	stock     map[uuid.UUID]int
	customers map[string]*customer.Customer

	saved  *document.Document
	status string
	err    error
}

func NewDraftModel(
	docSvc *document.Service,
	catalogSvc *catalog.Service,
	customerSvc *customer.Service,
	ownerID uuid.UUID,
	kind document.Kind,
) DraftModel {
	return NewDraftModelFrom(docSvc, catalogSvc, customerSvc, ownerID, document.Draft{Kind: kind})
}

// NewDraftModelFrom opens the editor on an existing draft, such as a duplicate.
func NewDraftModelFrom(
	docSvc *document.Service,
	catalogSvc *catalog.Service,
	customerSvc *customer.Service,
	ownerID uuid.UUID,
	draft document.Draft,
) DraftModel {
	picker := list.New([]list.Item{}, list.NewDefaultDelegate(), 60, 20)
	picker.Title = "Add Product"
	picker.SetShowHelp(false)

	if draft.Kind == "" {
		draft.Kind = document.KindInvoice
	}

	if draft.Kind == document.KindBill && draft.PaymentMethod == "" {
		draft.PaymentMethod = document.PaymentCash
		draft.PaymentStatus = document.PaymentPaid
	}

	if draft.Kind == document.KindBill && draft.Customer.Name == "" {
		draft.Customer.Name = "Walk-in"
	}

	draft.Items = slices.Clone(draft.Items)

	m := DraftModel{
		docService:      docSvc,
		catalogService:  catalogSvc,
		customerService: customerSvc,
		ownerID:         ownerID,
		draft:           draft,
		picker:          picker,
		stock:           make(map[uuid.UUID]int),
		customers:       make(map[string]*customer.Customer),
	}

	if len(draft.Items) > 0 {
		m.state = draftStateItems
		return m
	}

	m.state = draftStateCustomer
	m.form = m.customerForm()

	return m
}

func (m DraftModel) Title() string {
	if m.draft.Kind == document.KindBill {
		return "New Bill"
	}

	return "New Invoice"
}

func (m DraftModel) ShortHelp() string {
	switch m.state {
	case draftStateItems:
		help := "p: add product | +/-: quantity | x: remove | d: discount/tax | e: customer | s: save | Esc: discard"
		if m.draft.Kind == document.KindInvoice {
			help = "a: custom item | " + help
		}

		return help
	case draftStatePicker:
		return "Enter: add | /: search | Esc: done"
	case draftStateSaved:
		return "n: new | Esc: back to menu"
	case draftStateSaving:
		return "Saving..."
	}

	return "Esc: cancel | Enter/Tab: navigate form"
}

func (m DraftModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadProductsCmd(), m.loadCustomersCmd()}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}

	return tea.Batch(cmds...)
}

func (m DraftModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftProductsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not load products: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.products))
		for i, p := range msg.products {
			items[i] = productItem{p: p}
			m.stock[p.ID] = p.Stock
		}

		return m, m.picker.SetItems(items)

	case draftCustomersMsg:
		for _, c := range msg.customers {
			m.customers[customer.NormalizeName(c.Name)] = c
		}

		return m, nil

	case draftSavedMsg:
		if msg.err != nil {
			m.state = draftStateItems
			m.err = msg.err

			return m, nil
		}

		m.state = draftStateSaved
		m.saved = msg.doc
		m.err = nil

		return m, nil

	case tea.WindowSizeMsg:
		m.picker.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case draftStateCustomer, draftStateItemForm, draftStateAdjustForm:
		return m.updateForm(msg)
	case draftStateItems:
		return m.updateItems(msg)
	case draftStatePicker:
		return m.updatePicker(msg)
	case draftStateSaved:
		return m.updateSaved(msg)
	}

	return m, nil
}

func (m DraftModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		if m.state == draftStateCustomer && len(m.draft.Items) == 0 && m.draft.Customer.Name == "" {
			return m, Back
		}

		m.state = draftStateItems

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case draftStateCustomer:
		m.applyCustomerForm()
	case draftStateItemForm:
		m.applyItemForm()
	case draftStateAdjustForm:
		m.applyAdjustForm()
	}

	m.form = nil
	m.state = draftStateItems

	return m, nil
}

func (m DraftModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.draft.Items)-1 {
			m.cursor++
		}
	case "+", "=":
		m.draft.Items = changeQuantity(m.draft.Items, m.cursor, 1)
	case "-":
		m.draft.Items = changeQuantity(m.draft.Items, m.cursor, -1)
	case "x", "delete", "backspace":
		m.draft.Items = removeItem(m.draft.Items, m.cursor)
		m.cursor = clampCursor(m.cursor, len(m.draft.Items))
	case "p":
		m.state = draftStatePicker
		return m, nil
	case "a":
		if m.draft.Kind == document.KindBill {
			m.status = "Bills can only contain catalog products."
			return m, nil
		}

		m.form = m.itemForm()
		m.state = draftStateItemForm

		return m, m.form.Init()
	case "d":
		m.form = m.adjustForm()
		m.state = draftStateAdjustForm

		return m, m.form.Init()
	case "e":
		m.form = m.customerForm()
		m.state = draftStateCustomer

		return m, m.form.Init()
	case "s", "ctrl+s":
		if len(m.draft.Items) == 0 {
			m.status = "Add at least one item."
			return m, nil
		}

		m.state = draftStateSaving
		m.err = nil

		return m, m.saveCmd()
	}

	return m, nil
}

func (m DraftModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.picker.FilterState() != list.Filtering {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = draftStateItems
			return m, nil
		case tea.KeyEnter:
			item, ok := m.picker.SelectedItem().(productItem)
			if !ok {
				return m, nil
			}

			m.draft.Items = addProduct(m.draft.Items, item.p)
			m.cursor = slices.IndexFunc(m.draft.Items, func(li document.LineItem) bool {
				return li.ProductID != nil && *li.ProductID == item.p.ID
			})
			m.status = fmt.Sprintf("Added %s.", item.p.Name)

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m DraftModel) updateSaved(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "n":
		next := NewDraftModel(m.docService, m.catalogService, m.customerService, m.ownerID, m.draft.Kind)
		return next, next.Init()
	}

	return m, nil
}

func (m DraftModel) customerForm() *huh.Form {
	name := m.draft.Customer.Name
	phone := m.draft.Customer.Phone
	email := m.draft.Customer.Email

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Customer").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("customer name is required")
				}
				return nil
			}),
		huh.NewInput().Key("phone").Title("Phone").Value(&phone),
		huh.NewInput().Key("email").Title("Email").Value(&email),
	}

	if m.draft.Kind == document.KindBill {
		method := m.draft.PaymentMethod
		paid := m.draft.PaymentStatus != document.PaymentPending

		fields = append(fields,
			huh.NewSelect[document.PaymentMethod]().
				Key("payment").
				Title("Payment").
				Options(
					huh.NewOption("Cash", document.PaymentCash),
					huh.NewOption("Card", document.PaymentCard),
					huh.NewOption("UPI", document.PaymentUPI),
					huh.NewOption("Bank transfer", document.PaymentBankTransfer),
				).
				Value(&method),
			huh.NewConfirm().
				Key("paid").
				Title("Paid?").
				Value(&paid),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
}

func (m *DraftModel) applyCustomerForm() {
	c := document.Customer{
		Name:    strings.TrimSpace(m.form.GetString("name")),
		Phone:   strings.TrimSpace(m.form.GetString("phone")),
		Email:   strings.TrimSpace(m.form.GetString("email")),
		Address: m.draft.Customer.Address,
	}

	if known, ok := m.customers[customer.NormalizeName(c.Name)]; ok {
		c = fillFromKnown(c, known)
	}

	m.draft.Customer = c

	if m.draft.Kind != document.KindBill {
		return
	}

	if method, ok := m.form.Get("payment").(document.PaymentMethod); ok {
		m.draft.PaymentMethod = method
	}

	m.draft.PaymentStatus = document.PaymentPending
	if m.form.GetBool("paid") {
		m.draft.PaymentStatus = document.PaymentPaid
	}
}

func (m DraftModel) itemForm() *huh.Form {
	var name, price string
	qty := "1"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Item").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("item name is required")
					}
					return nil
				}),
			huh.NewInput().Key("qty").Title("Quantity").Value(&qty).Validate(validateQuantity),
			huh.NewInput().Key("price").Title("Unit price").Value(&price).Validate(validatePrice),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *DraftModel) applyItemForm() {
	qty, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("qty")))
	price, _ := money.Parse(m.form.GetString("price"))

	m.draft.Items = append(m.draft.Items, document.LineItem{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(m.form.GetString("name")),
		Quantity:  qty,
		UnitPrice: price,
	})
	m.cursor = len(m.draft.Items) - 1
}

func (m DraftModel) adjustForm() *huh.Form {
	discountOn := m.draft.Discount.Enabled
	discountRate := m.draft.Discount.Rate.String()
	taxOn := m.draft.Tax.Enabled
	taxRate := m.draft.Tax.Rate.String()
	notes := m.draft.Notes

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Key("discount_on").Title("Apply discount?").Value(&discountOn),
			huh.NewInput().Key("discount_rate").Title("Discount %").Value(&discountRate).Validate(validateRate),
			huh.NewConfirm().Key("tax_on").Title("Apply tax?").Value(&taxOn),
			huh.NewInput().Key("tax_rate").Title("Tax %").Value(&taxRate).Validate(validateRate),
			huh.NewText().Key("notes").Title("Notes").Value(&notes),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *DraftModel) applyAdjustForm() {
	discountRate, _ := money.Parse(m.form.GetString("discount_rate"))
	taxRate, _ := money.Parse(m.form.GetString("tax_rate"))

	m.draft.Discount = document.Adjustment{Enabled: m.form.GetBool("discount_on"), Rate: discountRate}
	m.draft.Tax = document.Adjustment{Enabled: m.form.GetBool("tax_on"), Rate: taxRate}
	m.draft.Notes = strings.TrimSpace(m.form.GetString("notes"))
}

func (m DraftModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case draftStateCustomer, draftStateItemForm, draftStateAdjustForm:
		if m.form == nil {
			return ""
		}

		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(54).Render(m.Title()+"\n\n"+m.form.View()),
			m.itemsView(),
		))

	case draftStatePicker:
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, m.picker.View(), m.itemsView()))

	case draftStateSaving:
		return style.Render("Saving " + strings.ToLower(m.Title()) + "...")

	case draftStateSaved:
		return style.Render(m.savedView())
	}

	return style.Render(m.itemsView())
}

func (m DraftModel) itemsView() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s for %s", accentStyle.Bold(true).Render(m.Title()), customerLabel(m.draft.Customer))

	if m.draft.Kind == document.KindBill {
		fmt.Fprintf(&sb, "  [%s, %s]", m.draft.PaymentMethod, m.draft.PaymentStatus)
	}

	sb.WriteString("\n\n")

	if len(m.draft.Items) == 0 {
		sb.WriteString(faintStyle.Render("No items yet.") + "\n")
	}

	for i, item := range m.draft.Items {
		cursor := "  "
		if i == m.cursor && m.state == draftStateItems {
			cursor = "> "
		}

		warn := ""
		if item.ProductID != nil && m.draft.Kind == document.KindBill {
			if stock, ok := m.stock[*item.ProductID]; ok && item.Quantity > stock {
				warn = errorStyle.Render(fmt.Sprintf(" only %d left", stock))
			}
		}

		fmt.Fprintf(&sb, "%s%-28s %4d x %10s = %10s%s\n",
			cursor, item.Name, item.Quantity, FormatAmount(item.UnitPrice), FormatAmount(item.Total()), warn)
	}

	sb.WriteString("\n")
	sb.WriteString(totalsView(m.docService.Preview(m.draft)))

	if m.draft.Notes != "" {
		sb.WriteString("\n" + faintStyle.Render(m.draft.Notes))
	}

	if m.err != nil {
		sb.WriteString("\n\n" + errorStyle.Render(saveErrorMessage(m.err)))
	}

	if m.status != "" {
		sb.WriteString("\n\n" + faintStyle.Render(m.status))
	}

	return panelStyle.Render(sb.String())
}

func (m DraftModel) savedView() string {
	doc := m.saved
	if doc == nil {
		return ""
	}

	header := successStyle.Bold(true).Render(fmt.Sprintf("Saved %s", doc.Number))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		fmt.Sprintf("%s | %s | %d item(s)", FormatDate(doc.Date), customerLabel(doc.Customer), len(doc.Items)),
		"",
		totalsView(doc.Totals),
	)
}

// saveErrorMessage turns a save failure into something a cashier can act on.
func saveErrorMessage(err error) string {
	var stockErr *document.StockError
	if errors.As(err, &stockErr) {
		return fmt.Sprintf("Not enough stock for %s (wanted %d). Nothing was saved.", stockErr.Item, stockErr.Requested)
	}

	var valErr *document.ValidationError
	if errors.As(err, &valErr) {
		msgs := make([]string, len(valErr.Fields))
		for i, f := range valErr.Fields {
			msgs[i] = f.Field + " " + f.Message
		}

		return "Cannot save: " + strings.Join(msgs, "; ")
	}

	return fmt.Sprintf("Error: %v", err)
}

// addProduct adds one unit of p, merging with an existing line for the same product.
func addProduct(items []document.LineItem, p *catalog.Product) []document.LineItem {
	for i, item := range items {
		if item.ProductID != nil && *item.ProductID == p.ID {
			return changeQuantity(items, i, 1)
		}
	}

	return append(slices.Clone(items), document.LineItem{
		ID:        uuid.NewString(),
		ProductID: new(p.ID),
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: p.Price,
	})
}

// changeQuantity moves the quantity of line i by delta, never below 1.
func changeQuantity(items []document.LineItem, i, delta int) []document.LineItem {
	if i < 0 || i >= len(items) {
		return items
	}

	out := slices.Clone(items)
	out[i].Quantity = max(out[i].Quantity+delta, 1)

	return out
}

func removeItem(items []document.LineItem, i int) []document.LineItem {
	if i < 0 || i >= len(items) {
		return items
	}

	return slices.Delete(slices.Clone(items), i, i+1)
}

func clampCursor(cursor, n int) int {
	return max(min(cursor, n-1), 0)
}

// fillFromKnown completes blank contact details from a saved customer.
func fillFromKnown(c document.Customer, known *customer.Customer) document.Customer {
	if c.Phone == "" {
		c.Phone = known.Phone
	}

	if c.Email == "" {
		c.Email = known.Email
	}

	if c.Address == "" {
		c.Address = known.Address
	}

	return c
}

func validateQuantity(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of at least 1")
	}

	return nil
}

func validateRate(s string) error {
	d, err := money.Parse(s)
	if err != nil {
		return errors.New("enter a percentage like 18")
	}

	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("rate must be between 0 and 100")
	}

	return nil
}

// Messages

type draftProductsMsg struct {
	products []*catalog.Product
	err      error
}

type draftCustomersMsg struct {
	customers []*customer.Customer
}

type draftSavedMsg struct {
	doc *document.Document
	err error
}

func (m DraftModel) loadProductsCmd() tea.Cmd {
	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.catalogService.List(ctx, ownerID, catalog.ListFilter{})

		return draftProductsMsg{products: products, err: err}
	}
}

func (m DraftModel) loadCustomersCmd() tea.Cmd {
	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		// A failed lookup only disables autofill.
		customers, _ := m.customerService.List(ctx, ownerID, "")

		return draftCustomersMsg{customers: customers}
	}
}

func (m DraftModel) saveCmd() tea.Cmd {
	draft := m.draft
	draft.Items = slices.Clone(m.draft.Items)
	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		doc, err := m.docService.Save(ctx, ownerID, draft)

		return draftSavedMsg{doc: doc, err: err}
	}
}
