package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

type docState int

const (
	docStateTimeframe docState = iota
	docStateList
	docStateDetail
	docStateDeleting
)

var kindFilters = []string{"All", "Invoices", "Bills"}

// docItem wraps a document to implement list.Item.
type docItem struct {
	doc *document.Document
}

func (i docItem) Title() string {
	kind := faintStyle.Render(fmt.Sprintf("[%s]", i.doc.Kind))

	return fmt.Sprintf("%s  %-12s  %10s  %s  %s",
		FormatDate(i.doc.Date), i.doc.Number, FormatAmount(i.doc.Totals.GrandTotal), kind, customerLabel(i.doc.Customer))
}

func (i docItem) Description() string {
	names := make([]string, 0, len(i.doc.Items))
	for _, item := range i.doc.Items {
		names = append(names, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}

	return strings.Join(names, ", ")
}

func (i docItem) FilterValue() string {
	return i.doc.Number + " " + i.doc.Customer.Name
}

func customerLabel(c document.Customer) string {
	if c.Name == "" {
		return "Walk-in"
	}

	return c.Name
}

type DocumentsModel struct {
	CommonModel
	docService   *document.Service
	ownerID      uuid.UUID
	shareBaseURL string

	state           docState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form
	docs            []*document.Document
	selected        *document.Document

	timeframe TimeframeSelectedMsg
	kindIdx   int
	loading   bool
	status    string

	// Delete form bindings
	formConfirm bool
	formRestock bool
}

func NewDocumentsModel(docSvc *document.Service, ownerID uuid.UUID, shareBaseURL string) DocumentsModel {
	l := list.New([]list.Item{}, docItemDelegate{}, 0, 0)
	l.Title = "Documents"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return DocumentsModel{
		docService:      docSvc,
		ownerID:         ownerID,
		shareBaseURL:    strings.TrimRight(shareBaseURL, "/"),
		timeframePicker: NewTimeframePicker(TimeframeToday),
		list:            l,
	}
}

func (m DocumentsModel) Title() string { return "Documents" }

func (m DocumentsModel) ShortHelp() string {
	switch m.state {
	case docStateTimeframe:
		return "Esc: back | Enter: select"
	case docStateList:
		return "Esc: back | Enter: open | k: kind | c: duplicate | s: share | x: delete | /: filter"
	case docStateDetail:
		return "Esc: back to list | c: duplicate | s: share | x: delete"
	case docStateDeleting:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m DocumentsModel) Init() tea.Cmd {
	return nil
}

func (m DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.timeframe = msg
		m.loading = true
		m.state = docStateList

		return m, m.loadDocsCmd()

	case loadDocsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.docs = msg.docs
		m.refreshListItems()

		m.status = ""
		if len(msg.docs) == 0 {
			m.status = "No documents found."
		}

		return m, nil

	case docActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = docStateList

			return m, nil
		}

		if msg.draft != nil {
			draft := *msg.draft
			return m, func() tea.Msg { return OpenDraftMsg{Draft: draft} }
		}

		m.status = msg.status
		if !msg.reload {
			return m, nil
		}

		m.state = docStateList
		m.selected = nil

		return m, m.loadDocsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case docStateTimeframe:
		return m.updateTimeframe(msg)
	case docStateList:
		return m.updateList(msg)
	case docStateDetail:
		return m.updateDetail(msg)
	case docStateDeleting:
		return m.updateDeleting(msg)
	}

	return m, nil
}

func (m DocumentsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m DocumentsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			m.state = docStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "enter":
			if item, ok := m.list.SelectedItem().(docItem); ok {
				m.selected = item.doc
				m.state = docStateDetail
			}

			return m, nil
		case "k":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.loading = true

			return m, m.loadDocsCmd()
		case "c", "s", "x":
			item, ok := m.list.SelectedItem().(docItem)
			if !ok {
				return m, nil
			}

			m.selected = item.doc

			return m.runAction(keyMsg.String())
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m DocumentsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = docStateList
		m.status = ""

		return m, nil
	case "c", "s", "x":
		return m.runAction(keyMsg.String())
	}

	return m, nil
}

func (m DocumentsModel) runAction(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "c":
		return m, m.duplicateCmd()
	case "s":
		if m.selected.Kind != document.KindInvoice {
			m.status = "Only invoices can be shared."
			return m, nil
		}

		return m, m.shareCmd()
	case "x":
		return m.startDeleting()
	}

	return m, nil
}

func (m DocumentsModel) startDeleting() (tea.Model, tea.Cmd) {
	m.formConfirm = false
	m.formRestock = false

	fields := []huh.Field{
		huh.NewConfirm().
			Key("confirm").
			Title(fmt.Sprintf("Delete %s?", m.selected.Number)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&m.formConfirm),
	}

	if m.selected.Kind == document.KindBill {
		fields = append(fields, huh.NewConfirm().
			Key("restock").
			Title("Put the sold quantities back into stock?").
			Affirmative("Yes").
			Negative("No").
			Value(&m.formRestock))
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
	m.state = docStateDeleting

	return m, m.form.Init()
}

func (m DocumentsModel) updateDeleting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = docStateList
			m.form = nil

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

	m.formConfirm = m.form.GetBool("confirm")
	m.formRestock = m.form.GetBool("restock")

	m.state = docStateList
	m.form = nil

	if !m.formConfirm {
		return m, nil
	}

	return m, m.deleteCmd()
}

func (m DocumentsModel) View() string {
	switch m.state {
	case docStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case docStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading documents...")
		}

		header := fmt.Sprintf("%s | [k] Kind: %s", m.timeframe.Label(), accentStyle.Render(kindFilters[m.kindIdx]))

		statusLine := ""
		if m.status != "" {
			statusLine = faintStyle.Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n" + statusLine + m.list.View())

	case docStateDetail:
		return lipgloss.NewStyle().Padding(1).Render(m.detailView())

	case docStateDeleting:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.detailView() + "\n" + m.form.View())
	}

	return ""
}

func (m DocumentsModel) detailView() string {
	doc := m.selected
	if doc == nil {
		return ""
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s  %s\n", accentStyle.Bold(true).Render(doc.Number), FormatDate(doc.Date), doc.Kind)
	fmt.Fprintf(&sb, "Customer: %s", customerLabel(doc.Customer))

	if doc.Customer.Phone != "" {
		fmt.Fprintf(&sb, "  %s", doc.Customer.Phone)
	}

	sb.WriteString("\n\n")

	for _, item := range doc.Items {
		fmt.Fprintf(&sb, "%-30s %4d x %10s = %10s\n",
			item.Name, item.Quantity, FormatAmount(item.UnitPrice), FormatAmount(item.Total()))
	}

	sb.WriteString("\n")
	sb.WriteString(totalsView(doc.Totals))

	if doc.PaymentMethod != "" {
		fmt.Fprintf(&sb, "\nPaid by %s (%s)", doc.PaymentMethod, doc.PaymentStatus)
	}

	if doc.Notes != "" {
		fmt.Fprintf(&sb, "\n%s", faintStyle.Render(doc.Notes))
	}

	out := panelStyle.Render(sb.String())
	if m.status != "" {
		out += "\n" + m.status
	}

	return out
}

// totalsView renders the money summary used by the document views.
func totalsView(t document.Totals) string {
	t = t.Rounded()

	var sb strings.Builder

	fmt.Fprintf(&sb, "%-22s %12s\n", "Subtotal", FormatAmount(t.Subtotal))

	if !t.DiscountAmount.IsZero() {
		fmt.Fprintf(&sb, "%-22s %12s\n", fmt.Sprintf("Discount (%s%%)", t.DiscountRate.String()), "-"+FormatAmount(t.DiscountAmount))
		fmt.Fprintf(&sb, "%-22s %12s\n", "Taxable", FormatAmount(t.TaxableAmount))
	}

	if !t.TaxAmount.IsZero() {
		fmt.Fprintf(&sb, "%-22s %12s\n", fmt.Sprintf("Tax (%s%%)", t.TaxRate.String()), FormatAmount(t.TaxAmount))
	}

	fmt.Fprintf(&sb, "%-22s %12s", "Total", accentStyle.Bold(true).Render(FormatAmount(t.GrandTotal)))

	return sb.String()
}

func (m *DocumentsModel) refreshListItems() {
	items := make([]list.Item, len(m.docs))
	for i, doc := range m.docs {
		items[i] = docItem{doc: doc}
	}

	m.list.SetItems(items)
}

// Messages

type loadDocsMsg struct {
	docs []*document.Document
	err  error
}

func (m DocumentsModel) loadDocsCmd() tea.Cmd {
	filter := document.ListFilter{}
	filter.StartDate, filter.EndDate = m.timeframe.Range()

	switch m.kindIdx {
	case 1:
		filter.Kind = new(document.KindInvoice)
	case 2:
		filter.Kind = new(document.KindBill)
	}

	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		docs, err := m.docService.List(ctx, ownerID, filter)

		return loadDocsMsg{docs: docs, err: err}
	}
}

type docActionMsg struct {
	status string
	draft  *document.Draft
	reload bool
	err    error
}

func (m DocumentsModel) duplicateCmd() tea.Cmd {
	id, ownerID := m.selected.ID, m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		draft, err := m.docService.Duplicate(ctx, ownerID, id)

		return docActionMsg{draft: draft, err: err}
	}
}

func (m DocumentsModel) shareCmd() tea.Cmd {
	id, ownerID, base := m.selected.ID, m.ownerID, m.shareBaseURL

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		share, err := m.docService.Share(ctx, ownerID, id)
		if err != nil {
			return docActionMsg{err: err}
		}

		status := "Share link: " + base + "/" + share.Token
		if share.ExpiresAt != nil {
			status += fmt.Sprintf(" (expires %s)", share.ExpiresAt.Format("2006-01-02 15:04"))
		}

		return docActionMsg{status: status}
	}
}

func (m DocumentsModel) deleteCmd() tea.Cmd {
	doc, ownerID := m.selected, m.ownerID
	opts := document.DeleteOptions{Restock: m.formRestock}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.docService.Delete(ctx, ownerID, doc.ID, opts); err != nil {
			return docActionMsg{err: err}
		}

		status := fmt.Sprintf("Deleted %s.", doc.Number)
		if opts.Restock {
			status = fmt.Sprintf("Deleted %s and restocked its items.", doc.Number)
		}

		return docActionMsg{status: status, reload: true}
	}
}

// docItemDelegate renders items in the list.
type docItemDelegate struct{}

func (d docItemDelegate) Height() int                             { return 2 }
func (d docItemDelegate) Spacing() int                            { return 0 }
func (d docItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d docItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(docItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = accentStyle.Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", faintStyle.Render(i.Description()))
}
