package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/touchbase/viz"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("TOUCHBASE"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	// Table
	s.WriteString(m.renderTable())
	s.WriteString("\n")

	s.WriteString(m.renderFeedback())

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string

	for i, tab := range tabNames {
		if Tab(i) == TabNotifications {
			if badge := viz.Badge(len(m.notifications)); badge != "" {
				tab = fmt.Sprintf("%s (%s)", tab, badge)
			}
		}
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	if m.dashboard == nil {
		return "Loading..."
	}

	switch m.tab {
	case TabDashboard:
		return m.renderDashboardTable()
	case TabCompanies:
		return m.renderCompaniesTable()
	case TabNotifications:
		return m.renderFollowupsTable()
	}
	return ""
}

func (m Model) newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}
	return t
}

func (m Model) renderDashboardTable() string {
	if len(m.dashboard.Rows) == 0 {
		return "No companies registered yet. Press n to add one."
	}

	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Company", Width: 24},
		{Title: "Last Contact", Width: 26},
		{Title: "Next Contact", Width: 26},
		{Title: "Status", Width: 10},
	}

	var rows []table.Row
	for _, row := range m.dashboard.Rows {
		last := "-"
		if len(row.Recent) > 0 {
			last = fmt.Sprintf("%s %s", row.Recent[0].FormattedDate(), row.Recent[0].Method)
		}

		next, status := "-", ""
		if row.Next != nil {
			next = fmt.Sprintf("%s %s", row.Next.FormattedDate(), row.Next.Method)
			status = row.Next.Status.Label()
		}

		rows = append(rows, table.Row{
			statusIndicator(row.Status()),
			row.Company.Name,
			last,
			next,
			status,
		})
	}

	return m.newTable(columns, rows).View()
}

func (m Model) renderCompaniesTable() string {
	if len(m.companies) == 0 {
		return "No companies yet. Press n to add one."
	}

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Location", Width: 18},
		{Title: "Email", Width: 26},
		{Title: "Phone", Width: 16},
		{Title: "Cadence", Width: 15},
	}

	var rows []table.Row
	for _, company := range m.companies {
		rows = append(rows, table.Row{
			company.Name,
			company.Location,
			company.Email,
			company.Phone,
			company.Periodicity,
		})
	}

	return m.newTable(columns, rows).View()
}

func (m Model) renderFeedback() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.message != "":
		return messageStyle.Render(m.message) + "\n"
	}
	return ""
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: Details",
		"n: New company",
		"l: Log",
		"p: Plan",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab":
		m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case "shift+tab":
		m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case "1", "2", "3":
		m.switchTab(Tab(msg.String()[0] - '1'))
	case "enter":
		if id, ok := m.selectedCompanyID(); ok {
			m.formCompanyID = id
			m.viewMode = ViewDetail
		}
	case "n":
		m.openForm(FormAddCompany)
	case "l":
		if id, ok := m.selectedCompanyID(); ok {
			m.formCompanyID = id
			m.openForm(FormLogCommunication)
		}
	case "p":
		if id, ok := m.selectedCompanyID(); ok {
			m.formCompanyID = id
			m.openForm(FormPlanCommunication)
		}
	case "r":
		return m, m.loadCmd()
	}

	return m, nil
}

func (m *Model) switchTab(tab Tab) {
	m.tab = tab
	m.selectedRow = 0
	m.message = ""
}
