package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"docslm-cli/internal/model"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if (m.modal == modalCreateCollection && m.createPhase == createSubmitting) || m.chatBusy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case restoreSelectionMsg:
		m.pendingRestore = false
		cmd := m.searchNow(true)
		return m, cmd

	case searchDebounceMsg:
		// Only the most recent pending timer fires a search.
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		cmd := m.searchNow(false)
		return m, cmd

	case searchResultsMsg:
		mm, cmd := m.handleSearchResults(msg)
		return mm, cmd

	case collectionsLoadedMsg:
		mm, cmd := m.handleCollectionsLoaded(msg)
		return mm, cmd

	case collectionFilesMsg:
		mm, cmd := m.handleCollectionFiles(msg)
		return mm, cmd

	case browseLoadedMsg:
		mm, cmd := m.handleBrowseLoaded(msg)
		return mm, cmd

	case createDoneMsg:
		mm, cmd := m.handleCreateDone(msg)
		return mm, cmd

	case createModalCloseMsg:
		mm, cmd := m.handleCreateModalClose(msg)
		return mm, cmd

	case loginDoneMsg:
		mm, cmd := m.handleLoginDone(msg)
		return mm, cmd

	case chatReplyMsg:
		mm, cmd := m.handleChatReply(msg)
		return mm, cmd

	case tea.KeyMsg:
		mm, cmd := m.handleKey(msg)
		return mm, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.modal {
	case modalCreateCollection:
		return m.updateCreateModal(msg)
	case modalPickModel:
		return m.updateModelPicker(msg)
	case modalLogin:
		return m.updateLoginModal(msg)
	case modalJobDetails:
		switch msg.String() {
		case "esc", "enter", "i":
			m.modal = modalNone
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.pane == paneSidebar {
			m.pane = paneChat
			m.searchInput.Blur()
			m.chatInput.Focus()
		} else {
			m.pane = paneSidebar
			m.chatInput.Blur()
			m.searchInput.Focus()
		}
		return m, nil
	case "ctrl+l":
		return m.openLoginModal()
	}

	if m.pane == paneChat {
		return m.updateChat(msg)
	}
	return m.updateSidebar(msg)
}

// updateSidebar drives the search box, the result list and the selected-job
// rows.
func (m appModel) updateSidebar(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.sidebarFocus == sidebarFocusList {
			return m.activateSidebarRow()
		}
		// Enter bypasses the debounce and uses the exact-match flow.
		m.debounceSeq++
		cmd := m.searchNow(true)
		return m, cmd

	case "down", "ctrl+n":
		if m.sidebarFocus == sidebarFocusInput {
			if len(m.results) > 0 || m.selectedJob != nil {
				m.sidebarFocus = sidebarFocusList
				m.searchInput.Blur()
			}
			return m, nil
		}
		m.moveSidebarCursor(1)
		return m, nil

	case "up", "ctrl+p":
		if m.sidebarFocus == sidebarFocusList {
			if !m.moveSidebarCursor(-1) {
				m.sidebarFocus = sidebarFocusInput
				m.searchInput.Focus()
			}
		}
		return m, nil

	case "esc":
		if m.sidebarFocus == sidebarFocusList {
			m.sidebarFocus = sidebarFocusInput
			m.searchInput.Focus()
		}
		return m, nil

	case "i":
		if m.sidebarFocus == sidebarFocusList {
			if job := m.cursorJob(); job != nil {
				m.modal = modalJobDetails
				return m, nil
			}
		}
	}

	// Everything else edits the query. Runes pressed while the list is
	// focused jump back to the input, like typing into the web search box.
	if m.sidebarFocus == sidebarFocusList {
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeyBackspace {
			return m, nil
		}
		m.sidebarFocus = sidebarFocusInput
		m.searchInput.Focus()
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		debounce := m.restartDebounce()
		return m, tea.Batch(cmd, debounce)
	}
	return m, cmd
}

// moveSidebarCursor moves within whichever list the sidebar currently shows.
// Returns false when already at the top and asked to move up.
func (m *appModel) moveSidebarCursor(delta int) bool {
	if m.selectedJob != nil {
		// Row 0 is "Crea nuovo Notebook", rows 1..n the collection cards.
		next := m.detailIdx + delta
		if next < 0 {
			return false
		}
		if next > len(m.collections) {
			next = len(m.collections)
		}
		m.detailIdx = next
		return true
	}
	next := m.resultIdx + delta
	if next < 0 {
		return false
	}
	if next >= len(m.results) {
		next = len(m.results) - 1
	}
	if next >= 0 {
		m.resultIdx = next
	}
	return true
}

// cursorJob returns the job the sidebar cursor refers to, if any.
func (m appModel) cursorJob() *model.Job {
	if m.selectedJob != nil {
		return m.selectedJob
	}
	if len(m.results) > 0 && m.resultIdx < len(m.results) {
		job := m.results[m.resultIdx]
		return &job
	}
	return nil
}

func (m appModel) activateSidebarRow() (appModel, tea.Cmd) {
	if m.selectedJob != nil {
		if m.detailIdx == 0 {
			cmd := m.openCreateModal(m.selectedJob.Code)
			return m, cmd
		}
		idx := m.detailIdx - 1
		if idx < len(m.collections) {
			cmd := m.selectCollection(m.collections[idx])
			return m, cmd
		}
		return m, nil
	}
	if len(m.results) > 0 && m.resultIdx < len(m.results) {
		cmd := m.selectJob(m.results[m.resultIdx])
		return m, cmd
	}
	return m, nil
}

func (m *appModel) resize() {
	sidebarW := m.sidebarWidth()
	m.searchInput.Width = sidebarW - 4
	chatW := m.width - sidebarW - 3
	if chatW < 30 {
		chatW = 30
	}
	m.chatInput.SetWidth(chatW - 2)
	m.resizeModelList()
}

func (m appModel) sidebarWidth() int {
	w := m.width / 3
	if w < 36 {
		w = 36
	}
	if w > 56 {
		w = 56
	}
	return w
}
