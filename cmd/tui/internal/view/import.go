package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/catalog"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

const importTimeout = 2 * time.Minute

// autoFormat lets the parser detect the file layout.
const autoFormat = "auto"

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStateParsing
	importStateReview
	importStateResult
)

type ImportModel struct {
	CommonModel
	catalogService *catalog.Service
	importService  *importer.Service
	ownerID        uuid.UUID

	state          importState
	filePicker     filepicker.Model
	selectedFormat string
	formatOptions  []string
	formatCursor   int

	rows       []catalog.CreateParams
	rowList    list.Model
	skipped    map[int]bool
	sourceFile string

	status string
	err    error
}

func NewImportModel(catalogSvc *catalog.Service, impSvc *importer.Service, ownerID uuid.UUID) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		catalogService: catalogSvc,
		importService:  impSvc,
		ownerID:        ownerID,
		filePicker:     fp,
		formatOptions:  append([]string{autoFormat}, importer.ProfileNames()...),
		skipped:        make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Products" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReview {
		return "Space: skip row | a: take all | Enter: import | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateFormatSelect {
			return m.updateFormatSelect(msg)
		}

		if m.state == importStateReview {
			return m.updateReview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.rows) == 0 {
			m.state = importStateResult
			m.status = "The file has no products."

			return m, nil
		}

		m.rows = msg.rows
		m.skipped = make(map[int]bool)
		m.state = importStateReview

		items := make([]list.Item, len(m.rows))
		for i, r := range m.rows {
			items[i] = rowItem{params: r, index: i}
		}

		delegate := rowDelegate{skipped: m.skipped}
		m.rowList = list.New(items, delegate, 80, 20)
		m.rowList.Title = fmt.Sprintf("%d product(s) in %s", len(m.rows), m.sourceFile)
		m.rowList.SetShowStatusBar(false)
		m.rowList.SetFilteringEnabled(false)
		m.rowList.SetShowHelp(false)

		return m, nil

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d products.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.sourceFile = path
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateFormatSelect
		return m, nil
	case importStateResult, importStateReview:
		m.state = importStateFormatSelect
		m.err = nil
		m.status = ""
		m.rows = nil
		m.skipped = make(map[int]bool)

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(m.formatOptions)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.selectedFormat = m.formatOptions[m.formatCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.rowList.Index()
		m.skipped[idx] = !m.skipped[idx]

		return m, nil
	case "a":
		clear(m.skipped)

		return m, nil
	case "enter":
		return m, m.importCmd()
	}

	var cmd tea.Cmd
	m.rowList, cmd = m.rowList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return m.viewFilePick()
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return lipgloss.NewStyle().Padding(1).Render(m.rowList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	s := "Select file format:\n\n"

	for i, format := range m.formatOptions {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		label := format
		if format == autoFormat {
			label = "detect from header"
		}

		s += fmt.Sprintf("%s %s\n", cursor, label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewFilePick() string {
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedFormat, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
}

// Messages

type parseResultMsg struct {
	rows []catalog.CreateParams
	err  error
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	format := m.selectedFormat
	if format == autoFormat {
		format = ""
	}

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Import(format, f)
		if err != nil {
			return parseResultMsg{err: err}
		}

		return parseResultMsg{rows: rows}
	}
}

func (m ImportModel) importCmd() tea.Cmd {
	rows := m.rows
	skipped := m.skipped
	ownerID := m.ownerID

	return func() tea.Msg {
		var take []catalog.CreateParams

		for i, r := range rows {
			if skipped[i] {
				continue
			}

			take = append(take, r)
		}

		if len(take) == 0 {
			return importResultMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		products, err := m.catalogService.Import(ctx, ownerID, take)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(products)}
	}
}

// Row list item

type rowItem struct {
	params catalog.CreateParams
	index  int
}

func (i rowItem) Title() string       { return i.params.Name }
func (i rowItem) Description() string { return i.params.SKU }
func (i rowItem) FilterValue() string { return i.params.Name }

// Row list delegate

type rowDelegate struct {
	skipped map[int]bool
}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rowItem)
	if !ok {
		return
	}

	checkbox := "[x]"
	if d.skipped[item.index] {
		checkbox = "[ ]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	p := item.params

	line1 := fmt.Sprintf("%s%s %s  %s", cursor, checkbox, p.Name, FormatAmount(p.Price))

	details := fmt.Sprintf("stock %d", p.Stock)
	if p.Category != "" {
		details += " | " + p.Category
	}

	if p.SKU != "" {
		details += " | " + p.SKU
	}

	fmt.Fprintf(w, "%s\n%s\n", line1, faintStyle.Render("      "+details))
}
