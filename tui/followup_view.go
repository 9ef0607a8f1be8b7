// ABOUTME: TUI view for follow-up tracking
// ABOUTME: Lists companies whose next planned contact is overdue or due today
package tui

import (
	"github.com/charmbracelet/bubbles/table"
)

func (m Model) renderFollowupsTable() string {
	if len(m.notifications) == 0 {
		return "Nothing overdue or due today."
	}

	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Company", Width: 24},
		{Title: "Due", Width: 13},
		{Title: "Type", Width: 17},
		{Title: "Status", Width: 10},
		{Title: "Notes", Width: 30},
	}

	var rows []table.Row
	for _, n := range m.notifications {
		rows = append(rows, table.Row{
			statusIndicator(n.Status()),
			n.CompanyName,
			n.Item.FormattedDate(),
			n.Item.Method,
			n.Status().Label(),
			n.Item.Notes,
		})
	}

	return m.newTable(columns, rows).View()
}
