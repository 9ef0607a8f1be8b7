package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/touchbase/viz"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	row := m.dashboardRow(m.formCompanyID)
	if row == nil {
		s.WriteString(titleStyle.Render("COMPANY"))
		s.WriteString("\n\nCompany not found\n")
		s.WriteString(m.renderDetailHelp())
		return s.String()
	}

	company := row.Company
	s.WriteString(titleStyle.Render(strings.ToUpper(company.Name)))
	s.WriteString("\n\n")

	s.WriteString(m.renderField("Location", company.Location))
	s.WriteString(m.renderField("LinkedIn", company.ProfileURL))
	s.WriteString(m.renderField("Emails", strings.Join(company.Emails, ", ")))
	s.WriteString(m.renderField("Phone Numbers", strings.Join(company.PhoneNumbers, ", ")))
	s.WriteString(m.renderField("Cadence", fmt.Sprintf("Every %d days", company.CommunicationPeriodicity)))
	if company.Comments != "" {
		s.WriteString(m.renderField("Comments", company.Comments))
	}

	s.WriteString("\n")
	s.WriteString(titleStyle.Render("Next Communication"))
	s.WriteString("\n")
	if row.Next == nil {
		s.WriteString("  Nothing planned\n")
	} else {
		s.WriteString(fmt.Sprintf("  %s  %s  %s\n", row.Next.FormattedDate(), row.Next.Method, renderStatus(row.Next.Status)))
	}
	if row.CadenceDue != nil {
		s.WriteString(fmt.Sprintf("  Cadence due %s\n", row.CadenceDue.Format(viz.DateLayout)))
	}

	s.WriteString("\n")
	s.WriteString(titleStyle.Render("Recent Communications"))
	s.WriteString("\n")
	if len(row.Recent) == 0 {
		s.WriteString("  None yet\n")
	}
	for _, item := range row.Recent {
		s.WriteString(fmt.Sprintf("  %s  %-16s %s\n", item.FormattedDate(), item.Method, item.Notes))
	}

	s.WriteString("\n")
	s.WriteString(m.renderFeedback())
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderField(label, value string) string {
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"l: Log communication",
		"p: Plan communication",
		"Esc: Back",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewList
	case "l":
		m.openForm(FormLogCommunication)
	case "p":
		m.openForm(FormPlanCommunication)
	}
	return m, nil
}
