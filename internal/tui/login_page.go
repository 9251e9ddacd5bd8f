package tui

import (
	"context"

	"github.com/chatterm/chatterm/internal/session"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginResultMsg struct {
	user session.UserProfile
	err  error
}

type resetResultMsg struct {
	err error
}

// LoginPageModel renders the login form, with an inline forgot-password
// mode that only asks for an email.
type LoginPageModel struct {
	deps      Deps
	username  textinput.Model
	password  textinput.Model
	email     textinput.Model
	focus     int
	resetMode bool
	busy      bool
	errMsg    string
	notice    string
}

// NewLoginPageModel creates a new login page
func NewLoginPageModel(deps Deps) LoginPageModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	email := textinput.New()
	email.Placeholder = "email"

	return LoginPageModel{deps: deps, username: username, password: password, email: email}
}

// WithNotice shows a one-off message above the form (post-signup,
// post-logout).
func (m LoginPageModel) WithNotice(notice string) LoginPageModel {
	m.notice = notice
	m.errMsg = ""
	return m
}

// Init initializes the model
func (m LoginPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login page
func (m LoginPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		user := msg.user
		return m, func() tea.Msg { return loggedInMsg{user: user} }

	case resetResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.resetMode = false
		m.notice = "Password reset link sent to your email."
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			if !m.resetMode {
				m.focus = (m.focus + 1) % 2
				m.applyFocus()
			}
			return m, nil

		case "ctrl+s":
			return m, func() tea.Msg { return gotoSignupMsg{} }

		case "ctrl+r":
			m.resetMode = true
			m.errMsg = ""
			m.email.Focus()
			return m, nil

		case "esc":
			if m.resetMode {
				m.resetMode = false
				m.applyFocus()
			}
			return m, nil

		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			m.notice = ""
			if m.resetMode {
				return m, m.submitReset()
			}
			return m, m.submitLogin()
		}
	}

	var cmd tea.Cmd
	if m.resetMode {
		m.email, cmd = m.email.Update(msg)
	} else if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *LoginPageModel) applyFocus() {
	m.username.Blur()
	m.password.Blur()
	m.email.Blur()
	if m.focus == 0 {
		m.username.Focus()
	} else {
		m.password.Focus()
	}
}

func (m LoginPageModel) submitLogin() tea.Cmd {
	deps := m.deps
	name := m.username.Value()
	password := m.password.Value()
	return func() tea.Msg {
		user, err := deps.Flows.Login(context.Background(), name, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m LoginPageModel) submitReset() tea.Cmd {
	deps := m.deps
	email := m.email.Value()
	return func() tea.Msg {
		return resetResultMsg{err: deps.Flows.ForgotPassword(context.Background(), email)}
	}
}

// View renders the login page
func (m LoginPageModel) View() string {
	if m.resetMode {
		view := titleStyle.Render("Forgot Password") + "\n\n"
		view += labelStyle.Render("Email") + "\n" + m.email.View() + "\n\n"
		view += m.statusLine()
		view += helpStyle("enter send reset link • esc back • ctrl+c quit")
		return docStyle.Render(view)
	}

	view := titleStyle.Render("chatterm — Login") + "\n\n"
	view += labelStyle.Render("User Name") + "\n" + m.username.View() + "\n"
	view += labelStyle.Render("Password") + "\n" + m.password.View() + "\n\n"
	view += m.statusLine()
	view += helpStyle("enter login • tab switch field • ctrl+s sign up • ctrl+r forgot password • ctrl+c quit")
	return docStyle.Render(view)
}

func (m LoginPageModel) statusLine() string {
	switch {
	case m.busy:
		return "Signing in...\n\n"
	case m.errMsg != "":
		return errorStyle(m.errMsg) + "\n\n"
	case m.notice != "":
		return noticeStyle(m.notice) + "\n\n"
	}
	return ""
}
