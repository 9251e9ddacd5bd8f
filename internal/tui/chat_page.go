package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatterm/chatterm/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type chatReplyMsg struct {
	reply string
	err   error
}

type loggedOutMsg struct {
	err error
}

type chatMessage struct {
	text     string
	fromUser bool
}

// ChatPageModel renders the conversation and the message input.
type ChatPageModel struct {
	deps     Deps
	user     session.UserProfile
	messages []chatMessage
	input    textinput.Model
	spin     spinner.Model
	waiting  bool
	errMsg   string
}

// NewChatPageModel creates a new chat page
func NewChatPageModel(deps Deps) ChatPageModel {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return ChatPageModel{deps: deps, input: input, spin: spin}
}

// WithUser binds the page to the signed-in user.
func (m ChatPageModel) WithUser(user session.UserProfile) ChatPageModel {
	m.user = user
	m.messages = nil
	m.errMsg = ""
	return m
}

// Init initializes the model
func (m ChatPageModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Update handles messages for the chat page
func (m ChatPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m.waiting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.messages = append(m.messages, chatMessage{text: msg.reply})
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return gotoLoginMsg{notice: "Logged out."} }

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+l":
			deps := m.deps
			return m, func() tea.Msg { return loggedOutMsg{err: deps.Flows.Logout()} }

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.messages = append(m.messages, chatMessage{text: text, fromUser: true})
			m.input.SetValue("")
			m.waiting = true
			m.errMsg = ""
			return m, m.send(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatPageModel) send(text string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		reply, err := deps.Chat.Send(context.Background(), text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// View renders the chat page
func (m ChatPageModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("chatterm — %s", m.user.Name))

	var lines []string
	if len(m.messages) == 0 {
		lines = append(lines, helpStyle("Start the conversation..."))
	}
	for _, msg := range m.messages {
		if msg.fromUser {
			lines = append(lines, userBubbleStyle.Render("you: "+msg.text))
		} else {
			lines = append(lines, modelBubbleStyle.Render("model: "+msg.text))
		}
	}
	if m.waiting {
		lines = append(lines, m.spin.View()+" waiting for reply")
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle(m.errMsg))
	}

	view := header + "\n\n" + strings.Join(lines, "\n") + "\n\n"
	view += m.input.View() + "\n\n"
	view += helpStyle("enter send • ctrl+l logout • ctrl+c quit")
	return docStyle.Render(view)
}
