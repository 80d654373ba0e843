package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/document"
)

type templateState int

const (
	templateStateList templateState = iota
	templateStateNaming
	templateStateDeleting
)

// templateItem wraps a template to implement list.Item.
type templateItem struct {
	tmpl *document.Template
}

func (i templateItem) Title() string {
	if i.tmpl.Builtin {
		return i.tmpl.Name + " " + faintStyle.Render("(built-in)")
	}

	return i.tmpl.Name
}

func (i templateItem) Description() string {
	names := make([]string, 0, len(i.tmpl.Preset.Items))
	for _, item := range i.tmpl.Preset.Items {
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}

	desc := fmt.Sprintf("%d line(s)", len(i.tmpl.Preset.Items))
	if len(names) > 0 {
		desc += ": " + strings.Join(names, ", ")
	}

	if i.tmpl.Preset.Tax.Enabled {
		desc += fmt.Sprintf(" | tax %s%%", i.tmpl.Preset.Tax.Rate)
	}

	return desc
}

func (i templateItem) FilterValue() string { return i.tmpl.Name }

type TemplatesModel struct {
	CommonModel
	docService *document.Service
	ownerID    uuid.UUID

	state    templateState
	list     list.Model
	form     *huh.Form
	selected *document.Template
	status   string
	loading  bool

	formName    string
	formConfirm bool
}

func NewTemplatesModel(docSvc *document.Service, ownerID uuid.UUID) TemplatesModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Invoice Templates"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return TemplatesModel{
		docService: docSvc,
		ownerID:    ownerID,
		list:       l,
		loading:    true,
	}
}

func (m TemplatesModel) Title() string { return "Templates" }

func (m TemplatesModel) ShortHelp() string {
	switch m.state {
	case templateStateList:
		return "Esc: back | Enter: use | n: new | x: delete | /: filter"
	case templateStateNaming, templateStateDeleting:
		return "Esc: cancel | Enter: confirm"
	}

	return ""
}

func (m TemplatesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TemplatesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		items := make([]list.Item, len(msg.templates))
		for i, t := range msg.templates {
			items[i] = templateItem{tmpl: t}
		}

		return m, m.list.SetItems(items)

	case templateActionMsg:
		if msg.err != nil {
			m.status = templateErrorMessage(msg.err)
			return m, nil
		}

		if msg.draft != nil {
			draft := *msg.draft
			return m, func() tea.Msg { return OpenDraftMsg{Draft: draft} }
		}

		m.status = msg.status
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case templateStateList:
		return m.updateList(msg)
	case templateStateNaming, templateStateDeleting:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TemplatesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			if item, ok := m.list.SelectedItem().(templateItem); ok {
				return m, m.useCmd(item.tmpl.ID)
			}

			return m, nil
		case "n":
			return m.startNaming()
		case "x":
			item, ok := m.list.SelectedItem().(templateItem)
			if !ok {
				return m, nil
			}

			if item.tmpl.Builtin {
				m.status = "Built-in templates cannot be deleted."
				return m, nil
			}

			m.selected = item.tmpl

			return m.startDeleting()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TemplatesModel) startNaming() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Template name").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}

				return nil
			}).
			Value(&m.formName),
	)).WithWidth(50).WithShowHelp(false)
	m.state = templateStateNaming
	m.status = ""

	return m, m.form.Init()
}

func (m TemplatesModel) startDeleting() (tea.Model, tea.Cmd) {
	m.formConfirm = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title(fmt.Sprintf("Delete template %q?", m.selected.Name)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&m.formConfirm),
	)).WithWidth(50).WithShowHelp(false)
	m.state = templateStateDeleting
	m.status = ""

	return m, m.form.Init()
}

func (m TemplatesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = templateStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state := m.state
	m.state = templateStateList

	if state == templateStateNaming {
		name := m.form.GetString("name")
		m.form = nil

		return m, m.createCmd(name)
	}

	confirmed := m.form.GetBool("confirm")
	m.form = nil

	if !confirmed {
		return m, nil
	}

	return m, m.deleteCmd(m.selected)
}

func (m TemplatesModel) View() string {
	statusLine := ""
	if m.status != "" {
		statusLine = faintStyle.Render(m.status) + "\n"
	}

	switch m.state {
	case templateStateNaming, templateStateDeleting:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading templates...")
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func templateErrorMessage(err error) string {
	switch {
	case errors.Is(err, document.ErrDuplicateTemplate):
		return "A template with that name already exists."
	case errors.Is(err, document.ErrBuiltinTemplate):
		return "Built-in templates cannot be deleted."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

type templatesLoadedMsg struct {
	templates []*document.Template
	err       error
}

type templateActionMsg struct {
	status string
	draft  *document.Draft
	err    error
}

func (m TemplatesModel) loadCmd() tea.Cmd {
	svc, ownerID := m.docService, m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		templates, err := svc.ListTemplates(ctx, ownerID)

		return templatesLoadedMsg{templates: templates, err: err}
	}
}

func (m TemplatesModel) useCmd(id uuid.UUID) tea.Cmd {
	svc, ownerID := m.docService, m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		draft, err := svc.DraftFromTemplate(ctx, ownerID, id)

		return templateActionMsg{draft: draft, err: err}
	}
}

func (m TemplatesModel) createCmd(name string) tea.Cmd {
	svc, ownerID := m.docService, m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := svc.CreateTemplate(ctx, ownerID, document.TemplateParams{Name: name})
		if err != nil {
			return templateActionMsg{err: err}
		}

		return templateActionMsg{status: fmt.Sprintf("Created %q.", t.Name)}
	}
}

func (m TemplatesModel) deleteCmd(t *document.Template) tea.Cmd {
	svc, ownerID := m.docService, m.ownerID
	id, name := t.ID, t.Name

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := svc.DeleteTemplate(ctx, ownerID, id); err != nil {
			return templateActionMsg{err: err}
		}

		return templateActionMsg{status: fmt.Sprintf("Deleted %q.", name)}
	}
}
