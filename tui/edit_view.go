package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/touchbase/handlers"
)

// Field positions in the communication forms.
const (
	commFieldMethod = iota
	commFieldDate
	commFieldNotes
	commFieldSchedule
)

func (m Model) renderFormView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render(m.formTitle()))
	s.WriteString("\n\n")

	// Form fields
	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderFeedback())

	// Help
	s.WriteString(m.renderFormHelp())

	return s.String()
}

func (m Model) formTitle() string {
	switch m.formKind {
	case FormAddCompany:
		return "NEW COMPANY"
	case FormLogCommunication:
		return "LOG COMMUNICATION: " + m.formCompanyName()
	case FormPlanCommunication:
		return "PLAN COMMUNICATION: " + m.formCompanyName()
	}
	return ""
}

func (m Model) formCompanyName() string {
	if row := m.dashboardRow(m.formCompanyID); row != nil {
		return row.Company.Name
	}
	return ""
}

func (m Model) renderFormHelp() string {
	help := []string{
		"Tab: Next field",
		"Enter: Save",
		"Esc: Cancel",
	}
	if m.formKind != FormAddCompany {
		help = append([]string{"←/→: Change type"}, help...)
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.err = nil
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		return m, m.updateFormFocus()
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.formInputs) - 1) % len(m.formInputs)
		return m, m.updateFormFocus()
	case "left", "right":
		if m.formKind != FormAddCompany && m.focusIndex == commFieldMethod {
			m.cycleMethod(msg.String() == "right")
			return m, nil
		}
	case "enter":
		if err := m.saveForm(context.Background()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.viewMode = ViewList
		return m, m.loadCmd()
	}

	// Update current input
	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) openForm(kind FormKind) {
	m.formKind = kind
	m.err = nil
	m.message = ""

	switch kind {
	case FormAddCompany:
		m.initCompanyForm()
	default:
		m.initCommunicationForm(kind)
	}

	m.focusIndex = 0
	m.updateFormFocus()
	m.viewMode = ViewForm
}

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	return input
}

func (m *Model) initCompanyForm() {
	m.formInputs = []textinput.Model{
		newInput("Name", 100),
		newInput("Location", 100),
		newInput("LinkedIn profile URL", 300),
		newInput("Emails (comma separated)", 500),
		newInput("Phone numbers (comma separated)", 200),
		newInput("Comments", 500),
		newInput(fmt.Sprintf("Communication periodicity in days (default %d)", m.companyH.DefaultPeriodicity()), 4),
	}
}

func (m *Model) initCommunicationForm(kind FormKind) {
	inputs := []textinput.Model{
		newInput("Communication type", 40),
		newInput("Date (YYYY-MM-DD)", 10),
		newInput("Notes", 500),
	}

	if len(m.methods) > 0 {
		inputs[commFieldMethod].SetValue(m.methods[0].ID)
	}
	if kind == FormLogCommunication {
		inputs[commFieldDate].SetValue(m.classifier.Today().Format("2006-01-02"))
		inputs = append(inputs, newInput("Schedule next follow-up? (y/N)", 3))
	}

	m.formInputs = inputs
}

func (m *Model) cycleMethod(forward bool) {
	if len(m.methods) == 0 {
		return
	}

	current := m.formInputs[commFieldMethod].Value()
	idx := -1
	for i, method := range m.methods {
		if method.ID == current {
			idx = i
			break
		}
	}

	switch {
	case idx < 0:
		idx = 0
	case forward:
		idx = (idx + 1) % len(m.methods)
	default:
		idx = (idx + len(m.methods) - 1) % len(m.methods)
	}
	m.formInputs[commFieldMethod].SetValue(m.methods[idx].ID)
}

func (m *Model) updateFormFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.formInputs {
		if i == m.focusIndex {
			cmd = m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) saveForm(ctx context.Context) error {
	switch m.formKind {
	case FormAddCompany:
		return m.saveCompany(ctx)
	case FormLogCommunication:
		return m.saveLog(ctx)
	case FormPlanCommunication:
		return m.savePlan(ctx)
	}
	return nil
}

func splitList(s string) []string {
	return strings.Split(s, ",")
}

func (m *Model) saveCompany(ctx context.Context) error {
	input := handlers.AddCompanyInput{
		Name:         m.formInputs[0].Value(),
		Location:     m.formInputs[1].Value(),
		ProfileURL:   m.formInputs[2].Value(),
		Emails:       splitList(m.formInputs[3].Value()),
		PhoneNumbers: splitList(m.formInputs[4].Value()),
		Comments:     m.formInputs[5].Value(),
	}

	if raw := strings.TrimSpace(m.formInputs[6].Value()); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("periodicity must be a whole number of days")
		}
		input.Periodicity = days
	}

	company, err := m.companyH.AddCompany(ctx, input)
	if err != nil {
		return err
	}

	m.message = fmt.Sprintf("Added %s", company.Name)
	return nil
}

func (m *Model) saveLog(ctx context.Context) error {
	schedule := strings.ToLower(strings.TrimSpace(m.formInputs[commFieldSchedule].Value()))

	result, err := m.commH.LogCommunication(ctx, handlers.LogCommunicationInput{
		CompanyID:    m.formCompanyID.String(),
		MethodID:     strings.TrimSpace(m.formInputs[commFieldMethod].Value()),
		Date:         strings.TrimSpace(m.formInputs[commFieldDate].Value()),
		Notes:        m.formInputs[commFieldNotes].Value(),
		ScheduleNext: schedule == "y" || schedule == "yes",
	})
	if err != nil {
		return err
	}

	m.message = fmt.Sprintf("Logged communication on %s", result.Logged.Date.Format("2006-01-02"))
	if result.Scheduled != nil {
		m.message += fmt.Sprintf(", next planned for %s", result.Scheduled.Date.Format("2006-01-02"))
	}
	return nil
}

func (m *Model) savePlan(ctx context.Context) error {
	planned, err := m.commH.PlanCommunication(ctx, handlers.PlanCommunicationInput{
		CompanyID: m.formCompanyID.String(),
		MethodID:  strings.TrimSpace(m.formInputs[commFieldMethod].Value()),
		Date:      strings.TrimSpace(m.formInputs[commFieldDate].Value()),
		Notes:     m.formInputs[commFieldNotes].Value(),
	})
	if err != nil {
		return err
	}

	m.message = fmt.Sprintf("Planned communication for %s", planned.Date.Format("2006-01-02"))
	return nil
}
