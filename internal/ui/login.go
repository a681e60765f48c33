package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState holds the credentials form.
type loginState struct {
	inputs     [2]textinput.Model // email, password
	focusIdx   int
	submitting bool
	errMsg     string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email    > "
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password > "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginState{inputs: [2]textinput.Model{email, password}}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		return m.focusLoginField((m.login.focusIdx + 1) % 2)

	case "shift+tab", "up":
		return m.focusLoginField((m.login.focusIdx + 1) % 2)

	case "enter":
		if m.login.focusIdx == 0 {
			return m.focusLoginField(1)
		}
		email := strings.TrimSpace(m.login.inputs[0].Value())
		password := m.login.inputs[1].Value()
		if email == "" || password == "" {
			m.login.errMsg = "Email and password are required"
			return m, nil
		}
		m.login.submitting = true
		m.login.errMsg = ""
		return m, loginCmd(m.ctx, m.client, email, password)
	}

	return m.updateLoginInputs(msg)
}

func (m Model) focusLoginField(idx int) (tea.Model, tea.Cmd) {
	m.login.focusIdx = idx
	var cmds []tea.Cmd
	for i := range m.login.inputs {
		if i == idx {
			cmds = append(cmds, m.login.inputs[i].Focus())
		} else {
			m.login.inputs[i].Blur()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	for i := range m.login.inputs {
		m.login.inputs[i], cmds[i] = m.login.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds[:]...)
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.err != nil {
		if sessionExpired(msg.err) {
			m.login.errMsg = "Invalid email or password"
		} else {
			m.logger.Error("login failed", "error", msg.err)
			m.login.errMsg = "Could not reach the portal"
		}
		return m, nil
	}

	m.store.SetUser(msg.user)
	m.currentView = ViewProducts
	return m, refreshCatalogCmd(m.ctx, m.client, m.store)
}

func (m Model) renderLogin() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Logo.Render("SHOPKEEP"))
	b.WriteString(s.MutedText.Render("  vendor portal"))
	b.WriteString("\n\n")
	b.WriteString(m.login.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(m.login.inputs[1].View())
	b.WriteString("\n\n")

	switch {
	case m.login.submitting:
		b.WriteString(s.InfoText.Render("Signing in..."))
	case m.login.errMsg != "":
		b.WriteString(s.DangerText.Render(m.login.errMsg))
	default:
		b.WriteString(s.MutedText.Render("enter: sign in  esc: quit"))
	}

	panel := s.Panel.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
