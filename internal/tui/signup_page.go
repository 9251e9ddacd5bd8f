package tui

import (
	"context"
	"fmt"

	"github.com/chatterm/chatterm/internal/auth"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type otpSentMsg struct {
	err error
}

type otpVerifiedMsg struct {
	err error
}

type signupResultMsg struct {
	err error
}

const (
	fieldEmail = iota
	fieldUsername
	fieldCountryCode
	fieldPhone
	fieldOTP
	fieldPassword
	fieldConfirm
	fieldCount
)

// SignupPageModel renders the signup form. The OTP challenge gating the
// final submission lives in the auth package; this page only shows its
// state.
type SignupPageModel struct {
	deps      Deps
	inputs    []textinput.Model
	focus     int
	challenge *auth.OTPChallenge
	busy      bool
	errMsg    string
	notice    string
}

// NewSignupPageModel creates a fresh signup page with a fresh challenge.
func NewSignupPageModel(deps Deps) SignupPageModel {
	placeholders := []string{"email", "username", "+91", "phone", "verification code", "password", "confirm password"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
	}
	inputs[fieldCountryCode].SetValue("+91")
	inputs[fieldCountryCode].CharLimit = 5
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldConfirm].EchoMode = textinput.EchoPassword
	inputs[fieldConfirm].EchoCharacter = '•'
	inputs[fieldEmail].Focus()

	return SignupPageModel{
		deps:      deps,
		inputs:    inputs,
		challenge: auth.NewOTPChallenge(),
	}
}

// Init initializes the model
func (m SignupPageModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SignupPageModel) fullPhone() string {
	return m.inputs[fieldCountryCode].Value() + m.inputs[fieldPhone].Value()
}

// Update handles messages for the signup page
func (m SignupPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case otpSentMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notice = "OTP sent successfully."
		m.errMsg = ""
		return m, nil

	case otpVerifiedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.notice = "OTP verified successfully."
		m.errMsg = ""
		return m, nil

	case signupResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return gotoLoginMsg{notice: "Account created successfully! Please log in."}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
			m.applyFocus()
			return m, nil

		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			m.applyFocus()
			return m, nil

		case "esc":
			return m, func() tea.Msg { return gotoLoginMsg{} }

		case "ctrl+o":
			return m.startFlow(m.sendOTP())

		case "ctrl+v":
			return m.startFlow(m.verifyOTP())

		case "enter":
			return m.startFlow(m.submitSignup())
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m SignupPageModel) startFlow(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.errMsg = ""
	m.notice = ""
	return m, cmd
}

func (m *SignupPageModel) applyFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m SignupPageModel) sendOTP() tea.Cmd {
	deps := m.deps
	challenge := m.challenge
	phone := m.fullPhone()
	return func() tea.Msg {
		return otpSentMsg{err: deps.Flows.SendOTP(context.Background(), challenge, phone)}
	}
}

func (m SignupPageModel) verifyOTP() tea.Cmd {
	deps := m.deps
	challenge := m.challenge
	code := m.inputs[fieldOTP].Value()
	return func() tea.Msg {
		return otpVerifiedMsg{err: deps.Flows.VerifyOTP(context.Background(), challenge, code)}
	}
}

func (m SignupPageModel) submitSignup() tea.Cmd {
	deps := m.deps
	challenge := m.challenge
	form := auth.SignupForm{
		Email:           m.inputs[fieldEmail].Value(),
		Name:            m.inputs[fieldUsername].Value(),
		Phone:           m.fullPhone(),
		Password:        m.inputs[fieldPassword].Value(),
		ConfirmPassword: m.inputs[fieldConfirm].Value(),
	}
	return func() tea.Msg {
		return signupResultMsg{err: deps.Flows.Signup(context.Background(), form, challenge)}
	}
}

// View renders the signup page
func (m SignupPageModel) View() string {
	labels := []string{"Email", "User Name", "Country Code", "Phone", "OTP", "Password", "Confirm Password"}

	view := titleStyle.Render("chatterm — Sign Up") + "\n\n"
	for i, input := range m.inputs {
		label := labels[i]
		if i == fieldOTP {
			label = fmt.Sprintf("%s (%s)", label, m.challenge.State())
		}
		view += labelStyle.Render(label) + "\n" + input.View() + "\n"
	}
	view += "\n"

	switch {
	case m.busy:
		view += "Working...\n\n"
	case m.errMsg != "":
		view += errorStyle(m.errMsg) + "\n\n"
	case m.notice != "":
		view += noticeStyle(m.notice) + "\n\n"
	}

	view += helpStyle("ctrl+o send OTP • ctrl+v verify OTP • enter sign up • esc back to login • ctrl+c quit")
	return docStyle.Render(view)
}
