// Package tui renders the terminal chat client: a login page, a signup
// page with phone verification, and the chat itself. All state and
// sequencing rules live in the auth, session and chat packages; the
// pages only collect input and display results.
package tui

import (
	"context"

	"github.com/chatterm/chatterm/internal/auth"
	"github.com/chatterm/chatterm/internal/chat"
	"github.com/chatterm/chatterm/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"
)

// Deps bundles everything the pages call into.
type Deps struct {
	fx.In

	Flows        *auth.Flows
	Session      *session.Session
	Bootstrapper *session.Bootstrapper
	Chat         *chat.Service
}

// bootstrapDoneMsg is sent once the startup session resolution finished.
type bootstrapDoneMsg struct{}

// gotoLoginMsg switches to the login page, optionally with a notice
// (e.g. after a successful signup or a logout).
type gotoLoginMsg struct {
	notice string
}

// gotoSignupMsg switches to the signup page.
type gotoSignupMsg struct{}

// loggedInMsg switches to the chat page for the given user.
type loggedInMsg struct {
	user session.UserProfile
}

// AppModel is the main application model that manages page switching
type AppModel struct {
	deps   Deps
	login  LoginPageModel
	signup SignupPageModel
	chat   ChatPageModel
	page   string // "loading", "login", "signup" or "chat"
}

// NewAppModel creates the app in its loading state.
func NewAppModel(deps Deps) AppModel {
	return AppModel{
		deps:   deps,
		login:  NewLoginPageModel(deps),
		signup: NewSignupPageModel(deps),
		chat:   NewChatPageModel(deps),
		page:   "loading",
	}
}

// Init kicks off the one-shot session bootstrap.
func (m AppModel) Init() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		deps.Bootstrapper.Run(context.Background())
		return bootstrapDoneMsg{}
	}
}

// Update handles app-level messages and delegates to the active page
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootstrapDoneMsg:
		// Route guard: an authenticated session starts on the chat page.
		if user, ok := m.deps.Session.User(); ok {
			m.page = "chat"
			m.chat = m.chat.WithUser(user)
			return m, m.chat.Init()
		}
		m.page = "login"
		return m, m.login.Init()

	case loggedInMsg:
		m.page = "chat"
		m.chat = m.chat.WithUser(msg.user)
		return m, m.chat.Init()

	case gotoLoginMsg:
		m.page = "login"
		m.login = m.login.WithNotice(msg.notice)
		return m, m.login.Init()

	case gotoSignupMsg:
		m.page = "signup"
		m.signup = NewSignupPageModel(m.deps)
		return m, m.signup.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	var tempModel tea.Model
	switch m.page {
	case "login":
		tempModel, cmd = m.login.Update(msg)
		m.login = tempModel.(LoginPageModel)
	case "signup":
		tempModel, cmd = m.signup.Update(msg)
		m.signup = tempModel.(SignupPageModel)
	case "chat":
		tempModel, cmd = m.chat.Update(msg)
		m.chat = tempModel.(ChatPageModel)
	}

	return m, cmd
}

// View renders the active page
func (m AppModel) View() string {
	switch m.page {
	case "login":
		return m.login.View()
	case "signup":
		return m.signup.View()
	case "chat":
		return m.chat.View()
	default:
		return docStyle.Render("Resolving session...")
	}
}

// Runner owns the bubbletea program lifecycle.
type Runner struct {
	deps Deps
}

// NewRunner creates a new Runner
func NewRunner(deps Deps) *Runner {
	return &Runner{deps: deps}
}

// Run blocks until the user quits the client.
func (r *Runner) Run() error {
	p := tea.NewProgram(NewAppModel(r.deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Module provides the TUI dependencies
var Module = fx.Options(
	fx.Provide(NewRunner),
)
