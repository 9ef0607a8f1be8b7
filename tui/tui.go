// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Shows dashboard, companies and notifications tabs and re-renders on every store mutation
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/handlers"
	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/viz"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewForm
)

// Tab is one of the top-level lists.
type Tab int

const (
	TabDashboard Tab = iota
	TabCompanies
	TabNotifications
)

var tabNames = []string{"Dashboard", "Companies", "Notifications"}

// FormKind selects which form ViewForm shows.
type FormKind int

const (
	FormAddCompany FormKind = iota
	FormLogCommunication
	FormPlanCommunication
)

// Options tune the presentation; zero values fall back to defaults.
type Options struct {
	RecentLimit        int
	DefaultPeriodicity int
}

// StoreChangedMsg is delivered when any surface mutates the store.
type StoreChangedMsg struct {
	Event db.Event
}

// dataMsg carries a fresh read of everything the views display.
type dataMsg struct {
	dashboard     *viz.Dashboard
	companies     []viz.CompanyRow
	notifications []viz.NotificationRow
	methods       []models.CommunicationMethod
}

type errMsg struct{ err error }

// Model is the main bubbletea model
type Model struct {
	store      *db.Store
	classifier *followups.Classifier
	companyH   *handlers.CompanyHandlers
	commH      *handlers.CommunicationHandlers
	recent     int

	viewMode ViewMode
	tab      Tab

	// List view state
	selectedRow int

	// Loaded data
	dashboard     *viz.Dashboard
	companies     []viz.CompanyRow
	notifications []viz.NotificationRow
	methods       []models.CommunicationMethod

	// Form state
	formKind      FormKind
	formInputs    []textinput.Model
	focusIndex    int
	formCompanyID uuid.UUID

	// UI state
	width   int
	height  int
	message string
	err     error
}

// NewModel creates a new TUI model
func NewModel(store *db.Store, classifier *followups.Classifier, opts Options) Model {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 5
	}
	return Model{
		store:      store,
		classifier: classifier,
		companyH:   handlers.NewCompanyHandlers(store, opts.DefaultPeriodicity),
		commH:      handlers.NewCommunicationHandlers(store, classifier),
		recent:     opts.RecentLimit,
		viewMode:   ViewList,
		tab:        TabDashboard,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd reads the store off the update loop.
func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return m.load(context.Background())
	}
}

func (m Model) load(ctx context.Context) tea.Msg {
	dash, err := viz.BuildDashboard(ctx, m.store, m.classifier, m.recent)
	if err != nil {
		return errMsg{err}
	}
	companies, err := viz.BuildCompanies(ctx, m.store)
	if err != nil {
		return errMsg{err}
	}
	notes, err := viz.BuildNotifications(ctx, m.store, m.classifier)
	if err != nil {
		return errMsg{err}
	}
	methods, err := m.store.CommunicationMethods(ctx)
	if err != nil {
		return errMsg{err}
	}
	return dataMsg{dashboard: dash, companies: companies, notifications: notes, methods: methods}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case StoreChangedMsg:
		return m, m.loadCmd()
	case dataMsg:
		m.dashboard = msg.dashboard
		m.companies = msg.companies
		m.notifications = msg.notifications
		m.methods = msg.methods
		m.clampSelection()
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewForm:
		return m.renderFormView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewForm:
		return m.handleFormKeys(msg)
	}

	return m, nil
}

func (m Model) rowCount() int {
	switch m.tab {
	case TabDashboard:
		if m.dashboard != nil {
			return len(m.dashboard.Rows)
		}
	case TabCompanies:
		return len(m.companies)
	case TabNotifications:
		return len(m.notifications)
	}
	return 0
}

func (m *Model) clampSelection() {
	if n := m.rowCount(); m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

// selectedCompanyID resolves the highlighted row to a company, on any tab.
func (m Model) selectedCompanyID() (uuid.UUID, bool) {
	if m.selectedRow >= m.rowCount() {
		return uuid.Nil, false
	}
	switch m.tab {
	case TabDashboard:
		return m.dashboard.Rows[m.selectedRow].Company.ID, true
	case TabCompanies:
		return m.companies[m.selectedRow].ID, true
	case TabNotifications:
		return m.notifications[m.selectedRow].CompanyID, true
	}
	return uuid.Nil, false
}

func (m Model) dashboardRow(id uuid.UUID) *viz.DashboardRow {
	if m.dashboard == nil {
		return nil
	}
	for i := range m.dashboard.Rows {
		if m.dashboard.Rows[i].Company.ID == id {
			return &m.dashboard.Rows[i]
		}
	}
	return nil
}

// Run starts the program and keeps it in sync with the store until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, store *db.Store, classifier *followups.Classifier, opts Options) error {
	p := tea.NewProgram(NewModel(store, classifier, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := store.Subscribe(func(evt db.Event) {
		// Send blocks until the program reads it, so never call it from a
		// mutation made inside Update.
		go p.Send(StoreChangedMsg{Event: evt})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui failed: %w", err)
	}
	log.Debug().Msg("tui exited")
	return nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusOverdue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		models.StatusDueToday: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		models.StatusUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

// statusIndicator marks table rows; table cells cannot carry styles.
func statusIndicator(s models.Status) string {
	switch s {
	case models.StatusOverdue:
		return "🔴"
	case models.StatusDueToday:
		return "🟡"
	case models.StatusUpcoming:
		return "🟢"
	}
	return "  "
}

func renderStatus(s models.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return ""
	}
	return style.Render(s.Label())
}
