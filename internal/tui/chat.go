package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// sendChat dispatches the composer content to the active agent. Empty
// messages and overlapping sends are ignored.
func (m *appModel) sendChat() tea.Cmd {
	if m.chatBusy {
		return nil
	}
	message := strings.TrimSpace(m.chatInput.Value())
	if message == "" {
		return nil
	}

	m.chatLog = append(m.chatLog, chatEntry{role: chatRoleUser, text: message})
	m.chatBusy = true
	m.chatErr = ""

	modelName := m.chatModel
	gw := m.gw
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			reply, err := gw.SendMessage(context.Background(), message, modelName)
			return chatReplyMsg{reply: reply, err: err}
		},
	)
}

func (m appModel) handleChatReply(msg chatReplyMsg) (appModel, tea.Cmd) {
	m.chatBusy = false
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("send message failed")
		m.chatErr = errMessage(msg.err)
		return m, nil
	}
	m.chatLog = append(m.chatLog, chatEntry{role: chatRoleAgent, text: msg.reply.Response})
	m.chatInput.Reset()
	return m, nil
}

func (m appModel) updateChat(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := m.sendChat()
		return m, cmd
	case "ctrl+o":
		return m.openModelPicker()
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m appModel) openModelPicker() (appModel, tea.Cmd) {
	m.modal = modalPickModel
	for i, it := range m.modelList.Items() {
		if mi, ok := it.(modelItem); ok && mi.name == m.chatModel {
			m.modelList.Select(i)
			break
		}
	}
	return m, nil
}

func (m appModel) updateModelPicker(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "enter":
		if it, ok := m.modelList.SelectedItem().(modelItem); ok {
			m.chatModel = it.name
		}
		m.modal = modalNone
		return m, nil
	}
	var cmd tea.Cmd
	m.modelList, cmd = m.modelList.Update(msg)
	return m, cmd
}

func (m *appModel) resizeModelList() {
	h := len(m.modelList.Items())*3 + 2
	if h > m.height-8 {
		h = m.height - 8
	}
	if h < 6 {
		h = 6
	}
	w := m.width / 2
	if w < 30 {
		w = 30
	}
	m.modelList.SetSize(w, h)
}
