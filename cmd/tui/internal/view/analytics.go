package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billbook/internal/analytics"
)

type analyticsState int

const (
	analyticsStateTimeframe analyticsState = iota
	analyticsStateLoading
	analyticsStateReport
)

var buckets = []analytics.Bucketing{analytics.Daily, analytics.Weekly, analytics.Monthly}

type AnalyticsModel struct {
	CommonModel
	analyticsService *analytics.Service
	ownerID          uuid.UUID

	state           analyticsState
	timeframePicker TimeframePicker
	spinner         spinner.Model

	timeframe TimeframeSelectedMsg
	bucketIdx int
	report    *analytics.Report
	err       error
}

func NewAnalyticsModel(svc *analytics.Service, ownerID uuid.UUID) AnalyticsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	return AnalyticsModel{
		analyticsService: svc,
		ownerID:          ownerID,
		timeframePicker:  NewTimeframePicker(TimeframeThisWeek),
		spinner:          s,
		bucketIdx:        1,
	}
}

func (m AnalyticsModel) Title() string { return "Analytics" }

func (m AnalyticsModel) ShortHelp() string {
	if m.state == analyticsStateReport {
		return "Esc: change timeframe | b: bucket | r: refresh"
	}

	return "Esc: back | Enter: select"
}

func (m AnalyticsModel) Init() tea.Cmd {
	return nil
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.timeframe = msg
		return m.load()

	case reportMsg:
		m.state = analyticsStateReport
		m.report = msg.report
		m.err = msg.err

		return m, nil
	}

	switch m.state {
	case analyticsStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd

	case analyticsStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case analyticsStateReport:
		keyMsg, ok := msg.(tea.KeyMsg)
		if !ok {
			return m, nil
		}

		switch keyMsg.String() {
		case "esc":
			m.state = analyticsStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "b":
			m.bucketIdx = (m.bucketIdx + 1) % len(buckets)
			return m.load()
		case "r":
			return m.load()
		}
	}

	return m, nil
}

func (m AnalyticsModel) load() (tea.Model, tea.Cmd) {
	m.state = analyticsStateLoading
	return m, tea.Batch(m.spinner.Tick, m.reportCmd())
}

func (m AnalyticsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case analyticsStateTimeframe:
		return style.Render(m.timeframePicker.View())
	case analyticsStateLoading:
		return style.Render(fmt.Sprintf("%s Crunching numbers...", m.spinner.View()))
	case analyticsStateReport:
		if m.err != nil {
			return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return style.Render(m.reportView())
	}

	return ""
}

func (m AnalyticsModel) reportView() string {
	r := m.report
	if r == nil {
		return ""
	}

	header := fmt.Sprintf("%s | [b] Bucket: %s", m.timeframe.Label(), accentStyle.Render(string(buckets[m.bucketIdx])))

	summary := panelStyle.Render(fmt.Sprintf(
		"Revenue   %12s  (%d docs)\nThis month %11s  (%d docs)\nToday     %12s  (%d docs)",
		FormatAmount(r.Summary.TotalRevenue), r.Summary.DocumentCount,
		FormatAmount(r.Summary.MonthRevenue), r.Summary.MonthDocuments,
		FormatAmount(r.Summary.TodayRevenue), r.Summary.TodayDocuments,
	))

	var customers strings.Builder
	customers.WriteString("Top customers\n")

	for i, c := range r.TopCustomers {
		fmt.Fprintf(&customers, "%d. %-20s %12s  %d\n", i+1, c.Name, FormatAmount(c.TotalSpend), c.DocumentCount)
	}

	var products strings.Builder
	products.WriteString("Top products\n")

	for i, p := range r.TopProducts {
		fmt.Fprintf(&products, "%d. %-20s %5d  %12s\n", i+1, p.Name, p.QuantitySold, FormatAmount(p.Revenue))
	}

	var periods strings.Builder
	periods.WriteString("Sales by period\n")

	for _, p := range r.Periods {
		fmt.Fprintf(&periods, "%-10s %12s  %d inv / %d bills\n", p.Label, FormatAmount(p.TotalSales), p.Invoices, p.Bills)
	}

	var stock strings.Builder
	stock.WriteString("Stock by category\n")

	for _, c := range r.Categories {
		fmt.Fprintf(&stock, "%-18s %12s  %d\n", c.Category, FormatAmount(c.StockValue), c.ProductCount)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(strings.TrimRight(customers.String(), "\n")),
		panelStyle.Render(strings.TrimRight(products.String(), "\n")),
	)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(strings.TrimRight(periods.String(), "\n")),
		panelStyle.Render(strings.TrimRight(stock.String(), "\n")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", summary, top, bottom)
}

// Messages

type reportMsg struct {
	report *analytics.Report
	err    error
}

func (m AnalyticsModel) reportCmd() tea.Cmd {
	req := analytics.Request{Bucket: buckets[m.bucketIdx], Top: analytics.DefaultTop}
	req.StartDate, req.EndDate = m.timeframe.Range()
	ownerID := m.ownerID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		report, err := m.analyticsService.Report(ctx, ownerID, req)

		return reportMsg{report: report, err: err}
	}
}
