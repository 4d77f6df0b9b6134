package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/apeerhq/apeer/internal/errors"
	"github.com/apeerhq/apeer/internal/guard"
	"github.com/apeerhq/apeer/internal/health"
	"github.com/apeerhq/apeer/internal/log"
	"github.com/apeerhq/apeer/internal/service"
	"github.com/apeerhq/apeer/internal/session"
)

// Services bundles the façades the views call.
type Services struct {
	Auth       *service.AuthService
	Activity   *service.ActivityService
	Evaluation *service.EvaluationService
	Dashboard  *service.DashboardService
	Group      *service.GroupService
	Admin      *service.AdminService
	Profile    *service.ProfileService
	Student    *service.StudentService
}

// Model is the root TUI state. The whole application subtree is gated
// behind the availability monitor; the route guard decides which dashboard
// a session may open.
type Model struct {
	sessions *session.Store
	services Services
	monitor  *health.Monitor
	logger   *log.Logger

	// Availability gate
	backend      health.Snapshot
	backendSub   <-chan health.Snapshot
	firstCheck   bool
	retryPending bool

	// Navigation
	view guard.View

	// gen identifies the view instance an async result belongs to; stale
	// results are ignored instead of cancelled at the transport level.
	gen int

	// Login form state. input is heap-allocated so the form's field
	// bindings survive the value copies Bubble Tea makes of the model.
	form     *huh.Form
	input    *authInput
	authBusy bool
	authErr  string

	// View data
	loading   bool
	viewErr   string
	student   *service.Student
	feedback  []service.FeedbackEntry
	analytics *service.ClassAnalytics
	students  []service.Student
	users     []service.User
	profile   *service.Profile

	spinner  spinner.Model
	width    int
	height   int
	quitting bool
	styles   Styles
}

// authInput holds the landing form's bound values.
type authInput struct {
	Action string // "login" or "register"
	Email  string
	Name   string
	Role   string
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("37")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("37")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}

// NewModel creates the root model. An already-hydrated session skips the
// landing view and opens that role's dashboard.
func NewModel(sessions *session.Store, services Services, monitor *health.Monitor, logger *log.Logger) Model {
	m := Model{
		sessions:   sessions,
		services:   services,
		monitor:    monitor,
		logger:     logger,
		backend:    health.Snapshot{Status: health.StatusChecking},
		backendSub: monitor.Subscribe(),
		firstCheck: true,
		view:       guard.ViewLanding,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:     DefaultStyles(),
	}

	if identity, ok := sessions.Current(); ok {
		m.view = guard.HomeView(identity.Role)
		m.loading = true
	}
	m.input = &authInput{Action: "login", Role: "student"}
	m.form = newLoginForm(m.input)
	return m
}

// Messages

type backendStatusMsg health.Snapshot

type authResultMsg struct {
	gen      int
	identity session.Identity
	err      error
}

type viewDataMsg struct {
	gen  int
	view guard.View
	data any
	err  error
}

// Init starts the spinner, the availability subscription and the form.
// A hydrated session also kicks off its dashboard's data load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitForBackend(), m.form.Init()}
	if m.view != guard.ViewLanding {
		cmds = append(cmds, m.loadView(m.view, m.gen))
	}
	return tea.Batch(cmds...)
}

// waitForBackend relays the next monitor snapshot into the update loop.
// The subscription is made once at construction; this only reads from it.
func (m Model) waitForBackend() tea.Cmd {
	sub := m.backendSub
	return func() tea.Msg {
		return backendStatusMsg(<-sub)
	}
}

// navigate switches views through the route guard. Denied navigations
// land on the landing view, replacing the current view so there is no
// history to go back to.
func (m *Model) navigate(view guard.View) tea.Cmd {
	var identity *session.Identity
	if current, ok := m.sessions.Current(); ok {
		identity = &current
	}

	if !guard.CanEnter(view, identity) {
		m.logger.Debug("navigation denied", "view", string(view))
		view = guard.ViewLanding
	}

	if view == guard.ViewLanding {
		m.view = guard.ViewLanding
		m.gen++
		m.loading = false
		m.viewErr = ""
		m.form = newLoginForm(m.input)
		return m.form.Init()
	}

	m.view = view
	m.gen++
	m.loading = true
	m.viewErr = ""
	return m.loadView(view, m.gen)
}

// loadView fetches the data a view needs, tagged with its generation.
func (m *Model) loadView(view guard.View, gen int) tea.Cmd {
	ctx := context.Background()
	switch view {
	case guard.ViewStudentDashboard:
		return func() tea.Msg {
			student, err := m.services.Dashboard.Student(ctx)
			return viewDataMsg{gen: gen, view: view, data: student, err: err}
		}
	case guard.ViewTeacherDashboard:
		return func() tea.Msg {
			analytics, err := m.services.Dashboard.ClassAnalytics(ctx)
			if err != nil {
				return viewDataMsg{gen: gen, view: view, err: err}
			}
			students, err := m.services.Dashboard.Students(ctx)
			if err != nil {
				return viewDataMsg{gen: gen, view: view, err: err}
			}
			return viewDataMsg{gen: gen, view: view, data: teacherData{analytics: analytics, students: students}}
		}
	case guard.ViewAdminDashboard:
		return func() tea.Msg {
			users, err := m.services.Admin.Users(ctx)
			return viewDataMsg{gen: gen, view: view, data: users, err: err}
		}
	case guard.ViewProfile:
		return func() tea.Msg {
			profile, err := m.services.Profile.Get(ctx)
			return viewDataMsg{gen: gen, view: view, data: profile, err: err}
		}
	case guard.ViewFeedback:
		return func() tea.Msg {
			entries, err := m.services.Student.FeedbackHistory(ctx)
			return viewDataMsg{gen: gen, view: view, data: entries, err: err}
		}
	default:
		m.loading = false
		return nil
	}
}

type teacherData struct {
	analytics service.ClassAnalytics
	students  []service.Student
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case backendStatusMsg:
		m.backend = health.Snapshot(msg)
		m.firstCheck = false
		m.retryPending = false
		return m, m.waitForBackend()

	case authResultMsg:
		return m.handleAuthResult(msg)

	case viewDataMsg:
		return m.handleViewData(msg)
	}

	return m.updateForm(msg)
}

// handleAuthResult applies a resolved auth attempt, unless navigation has
// moved on since it started.
func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.authBusy = false
	if msg.err != nil {
		m.authErr = m.sessions.FailureReason()
		if m.authErr == "" {
			m.authErr = msg.err.Error()
		}
		m.form = newLoginForm(m.input)
		return m, m.form.Init()
	}
	m.authErr = ""
	cmd := m.navigate(guard.HomeView(msg.identity.Role))
	return m, cmd
}

// handleViewData applies fetched view data; stale generations and results
// for a view that is no longer current are dropped.
func (m Model) handleViewData(msg viewDataMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || msg.view != m.view {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		// A 401 means the adapter's global hook already cleared the
		// session; the view it resolved into is no longer permitted.
		if errors.IsKind(msg.err, errors.KindUnauthorized) {
			cmd := m.navigate(guard.ViewLanding)
			return m, cmd
		}
		m.viewErr = msg.err.Error()
		return m, nil
	}

	switch data := msg.data.(type) {
	case service.Student:
		m.student = &data
	case teacherData:
		m.analytics = &data.analytics
		m.students = data.students
	case []service.User:
		m.users = data
	case service.Profile:
		m.profile = &data
	case []service.FeedbackEntry:
		m.feedback = data
	}
	return m, nil
}

// updateForm feeds messages to the landing form when it is on screen.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != guard.ViewLanding || m.form == nil || m.authBusy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submitAuth()
	}
	return m, cmd
}

// submitAuth starts the authentication attempt described by the form.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	m.authBusy = true
	m.authErr = ""
	m.gen++
	gen := m.gen

	input := *m.input
	sessions := m.sessions

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var identity session.Identity
		var err error
		if input.Action == "register" {
			identity, err = sessions.Register(ctx, input.Email, input.Name, input.Role)
		} else {
			identity, err = sessions.Login(ctx, input.Email)
		}
		return authResultMsg{gen: gen, identity: identity, err: err}
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "r":
		// Manual retry while the backend is unreachable.
		if m.backend.Status == health.StatusUnreachable {
			m.retryPending = true
			return m, func() tea.Msg {
				return backendStatusMsg(m.monitor.CheckNow(context.Background()))
			}
		}

	case "q":
		if m.view != guard.ViewLanding {
			m.quitting = true
			return m, tea.Quit
		}

	case "p":
		if m.view != guard.ViewLanding && !m.loading {
			cmd := m.navigate(guard.ViewProfile)
			return m, cmd
		}

	case "f":
		if m.view != guard.ViewLanding && !m.loading {
			cmd := m.navigate(guard.ViewFeedback)
			return m, cmd
		}

	case "h":
		if identity, ok := m.sessions.Current(); ok && !m.loading {
			cmd := m.navigate(guard.HomeView(identity.Role))
			return m, cmd
		}

	case "esc":
		if m.view == guard.ViewProfile || m.view == guard.ViewFeedback {
			if identity, ok := m.sessions.Current(); ok {
				cmd := m.navigate(guard.HomeView(identity.Role))
				return m, cmd
			}
		}

	case "x":
		if m.viewErr != "" {
			m.viewErr = ""
			return m, nil
		}

	case "ctrl+l":
		if m.view != guard.ViewLanding {
			m.sessions.Logout()
			cmd := m.navigate(guard.ViewLanding)
			return m, cmd
		}
	}

	return m.updateForm(msg)
}
