package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/billbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/billbook/internal/app"
	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/document"
	"github.com/MrJamesThe3rd/billbook/internal/logger"
)

// tuiLogFile receives logs when LOG_OUTPUT points at the terminal.
const tuiLogFile = "billbook-tui.log"

type model struct {
	svc          *app.Services
	ownerID      uuid.UUID
	shareBaseURL string
	size         tea.WindowSizeMsg

	currentView View

	draftView     view.DraftModel
	documentsView view.DocumentsModel
	inventoryView view.InventoryModel
	importView    view.ImportModel
	analyticsView view.AnalyticsModel
	exportView    view.ExportModel
	templateView  view.TemplatesModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDraft     View = 1
	ViewDocuments View = 2
	ViewInventory View = 3
	ViewImport    View = 4
	ViewAnalytics View = 5
	ViewExport    View = 6
	ViewTemplates View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lc := cfg.Logging()
	if lc.Output == "stdout" || lc.Output == "stderr" {
		lc.Output = tuiLogFile
	}

	if err := logger.Setup(lc); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ownerID, err := uuid.Parse(cfg.TUI.OwnerID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "TUI_OWNER_ID must be set to the owner's id")
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	svc, err := app.New(cfg, db)
	if err != nil {
		log.Error().Err(err).Msg("failed to build services")
		fmt.Fprintf(os.Stderr, "failed to build services: %v\n", err)
		os.Exit(1)
	}

	return model{
		svc:          svc,
		ownerID:      ownerID,
		shareBaseURL: cfg.Share.BaseURL,
		currentView:  ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.OpenDraftMsg:
		m.currentView = ViewDraft
		m.draftView = view.NewDraftModelFrom(m.svc.Documents, m.svc.Catalog, m.svc.Customers, m.ownerID, msg.Draft)

		return m, tea.Batch(m.draftView.Init(), m.resize)
	}

	switch m.currentView {
	case ViewDraft:
		var newModel tea.Model
		newModel, cmd = m.draftView.Update(msg)
		m.draftView = newModel.(view.DraftModel)
	case ViewDocuments:
		var newModel tea.Model
		newModel, cmd = m.documentsView.Update(msg)
		m.documentsView = newModel.(view.DocumentsModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewAnalytics:
		var newModel tea.Model
		newModel, cmd = m.analyticsView.Update(msg)
		m.analyticsView = newModel.(view.AnalyticsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewTemplates:
		var newModel tea.Model
		newModel, cmd = m.templateView.Update(msg)
		m.templateView = newModel.(view.TemplatesModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewDraft
		m.draftView = view.NewDraftModel(m.svc.Documents, m.svc.Catalog, m.svc.Customers, m.ownerID, document.KindInvoice)
		cmd = m.draftView.Init()
	case "2":
		m.currentView = ViewDraft
		m.draftView = view.NewDraftModel(m.svc.Documents, m.svc.Catalog, m.svc.Customers, m.ownerID, document.KindBill)
		cmd = m.draftView.Init()
	case "3":
		m.currentView = ViewDocuments
		m.documentsView = view.NewDocumentsModel(m.svc.Documents, m.ownerID, m.shareBaseURL)
		cmd = m.documentsView.Init()
	case "4":
		m.currentView = ViewInventory
		m.inventoryView = view.NewInventoryModel(m.svc.Catalog, m.ownerID)
		cmd = m.inventoryView.Init()
	case "5":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.svc.Catalog, m.svc.Importer, m.ownerID)
		cmd = m.importView.Init()
	case "6":
		m.currentView = ViewAnalytics
		m.analyticsView = view.NewAnalyticsModel(m.svc.Analytics, m.ownerID)
		cmd = m.analyticsView.Init()
	case "7":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.svc.Export, m.ownerID)
		cmd = m.exportView.Init()
	case "8":
		m.currentView = ViewTemplates
		m.templateView = view.NewTemplatesModel(m.svc.Documents, m.ownerID)
		cmd = m.templateView.Init()
	default:
		return m, nil
	}

	return m, tea.Batch(cmd, m.resize)
}

// resize replays the last window size so a freshly opened view can lay itself out.
func (m model) resize() tea.Msg {
	if m.size.Width == 0 {
		return nil
	}

	return m.size
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billbook\n\n" +
				"1. New Invoice\n" +
				"2. New Bill\n" +
				"3. Documents\n" +
				"4. Inventory\n" +
				"5. Import Products\n" +
				"6. Analytics\n" +
				"7. Export Documents\n" +
				"8. Invoice Templates\n\n" +
				"q. Quit",
		)
	case ViewDraft:
		return m.draftView.View()
	case ViewDocuments:
		return m.documentsView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewImport:
		return m.importView.View()
	case ViewAnalytics:
		return m.analyticsView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewTemplates:
		return m.templateView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run TUI")
		os.Exit(1)
	}
}
