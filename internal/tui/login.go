package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) openLoginModal() (appModel, tea.Cmd) {
	m.modal = modalLogin
	m.loginErr = ""
	m.loginInput.SetValue("")
	m.loginInput.Focus()
	return m, nil
}

func (m *appModel) submitLogin() tea.Cmd {
	if m.loginBusy {
		return nil
	}
	username := strings.TrimSpace(m.loginInput.Value())
	if username == "" {
		return nil
	}
	m.loginBusy = true
	m.loginErr = ""

	gw := m.gw
	return func() tea.Msg {
		user, err := gw.Login(context.Background(), username)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m appModel) handleLoginDone(msg loginDoneMsg) (appModel, tea.Cmd) {
	m.loginBusy = false
	if msg.err != nil {
		// The web client only logged login failures to the console; here the
		// failure is surfaced inline so the user knows what happened.
		m.log.Error().Err(msg.err).Msg("login failed")
		m.loginErr = errMessage(msg.err)
		return m, nil
	}
	user := msg.user
	m.user = &user
	m.greeting = fmt.Sprintf("Benvenuto, %s", user.Name)
	if m.modal == modalLogin {
		m.modal = modalNone
		m.loginInput.Blur()
	}
	return m, nil
}

func (m appModel) updateLoginModal(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if m.loginBusy {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.loginInput.Blur()
		return m, nil
	case "enter":
		cmd := m.submitLogin()
		return m, cmd
	}
	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}
