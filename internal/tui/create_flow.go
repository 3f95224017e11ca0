package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const createSuccessLinger = 1500 * time.Millisecond

// sanitizeCollectionName trims and collapses internal whitespace runs to
// single underscores. An empty result means the name is unusable.
func sanitizeCollectionName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// openCreateModal starts a fresh creation session for a job: empty name,
// empty file selection, browser at the file root, name input focused.
func (m *appModel) openCreateModal(commessa string) tea.Cmd {
	m.modal = modalCreateCollection
	m.createPhase = createBrowsing
	m.activeJobForCreation = commessa
	m.pendingFiles = nil
	m.createErr = ""
	m.createFocus = createFocusName
	m.nameInput.SetValue("")
	m.nameInput.Focus()
	m.browser = fileBrowser{}
	return m.navigateBrowser(commessa, "")
}

// closeCreateModal clears the modal-scoped state unconditionally; it is the
// single close path for esc, post-success auto-close and explicit close.
func (m *appModel) closeCreateModal() {
	m.modal = modalNone
	m.createPhase = createBrowsing
	m.activeJobForCreation = ""
	m.pendingFiles = nil
	m.createErr = ""
	m.nameInput.Blur()
	m.browser = fileBrowser{}
}

// submitCreate runs the guarded single-flight submission. No-ops: no active
// job, empty trimmed name, empty sanitized name (silent, matching the web
// client), or a submission already in flight.
func (m *appModel) submitCreate() tea.Cmd {
	if m.createPhase == createSubmitting || m.activeJobForCreation == "" {
		return nil
	}
	raw := strings.TrimSpace(m.nameInput.Value())
	if raw == "" {
		return nil
	}
	name := sanitizeCollectionName(raw)
	if name == "" {
		return nil
	}
	m.nameInput.SetValue(name)

	// Single flight: inputs are disabled and the body becomes a spinner until
	// the backend answers. They re-enable only on failure; success goes
	// straight to the auto-close + reload path.
	m.createPhase = createSubmitting
	m.createErr = ""
	m.nameInput.Blur()

	commessa := m.activeJobForCreation
	files := append([]string(nil), m.pendingFiles...)
	gw := m.gw
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			err := gw.CreateCollection(context.Background(), commessa, name, files)
			return createDoneMsg{commessa: commessa, err: err}
		},
	)
}

func (m appModel) handleCreateDone(msg createDoneMsg) (appModel, tea.Cmd) {
	if m.modal != modalCreateCollection || m.createPhase != createSubmitting {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("commessa", msg.commessa).Msg("create collection failed")
		// Retry-friendly error state: message shown, inputs re-enabled, file
		// selection untouched.
		m.createPhase = createFailed
		m.createErr = "Errore nella creazione del notebook: " + errMessage(msg.err)
		m.nameInput.Focus()
		return m, nil
	}

	m.log.Info().Str("commessa", msg.commessa).Msg("collection created")
	m.createPhase = createSucceeded
	m.createCloseSeq++
	seq := m.createCloseSeq
	return m, tea.Tick(createSuccessLinger, func(time.Time) tea.Msg {
		return createModalCloseMsg{seq: seq}
	})
}

// handleCreateModalClose is the post-success auto-close: shut the modal and
// reload the selected-job view so the new collection shows up.
func (m appModel) handleCreateModalClose(msg createModalCloseMsg) (appModel, tea.Cmd) {
	if msg.seq != m.createCloseSeq || m.modal != modalCreateCollection || m.createPhase != createSucceeded {
		return m, nil
	}
	m.closeCreateModal()
	if m.selectedJob != nil {
		cmd := m.loadCollections(m.selectedJob.Code)
		return m, cmd
	}
	return m, nil
}

// updateCreateModal handles keys while the creation modal is open.
func (m appModel) updateCreateModal(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if m.createPhase == createSubmitting {
		// Inputs are disabled for the whole in-flight window.
		return m, nil
	}
	if m.createPhase == createSucceeded {
		if msg.String() == "esc" || msg.String() == "enter" {
			return m.handleCreateModalClose(createModalCloseMsg{seq: m.createCloseSeq})
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeCreateModal()
		return m, nil
	case "tab":
		if m.createFocus == createFocusName {
			m.createFocus = createFocusBrowser
			m.nameInput.Blur()
		} else {
			m.createFocus = createFocusName
			m.nameInput.Focus()
		}
		return m, nil
	case "ctrl+s":
		cmd := m.submitCreate()
		return m, cmd
	}

	if m.createFocus == createFocusBrowser {
		return m.updateBrowserKeys(msg)
	}

	if msg.String() == "enter" {
		cmd := m.submitCreate()
		return m, cmd
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m appModel) updateBrowserKeys(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "up", "ctrl+p":
		if m.browser.cursor > 0 {
			m.browser.cursor--
		}
	case "down", "ctrl+n":
		if m.browser.cursor < len(m.browser.entries)-1 {
			m.browser.cursor++
		}
	case "left", "backspace":
		if m.browser.subpath != "" {
			cmd := m.navigateBrowser(m.browser.commessa, parentSubpath(m.browser.subpath))
			return m, cmd
		}
	case "enter":
		if m.browser.cursor < len(m.browser.entries) {
			entry := m.browser.entries[m.browser.cursor]
			if entry.IsDir {
				cmd := m.navigateBrowser(m.browser.commessa, entryPath(m.browser.subpath, entry.Name))
				return m, cmd
			}
			m.toggleFile(entryPath(m.browser.subpath, entry.Name))
		}
	case " ":
		if m.browser.cursor < len(m.browser.entries) {
			entry := m.browser.entries[m.browser.cursor]
			if !entry.IsDir {
				m.toggleFile(entryPath(m.browser.subpath, entry.Name))
			}
		}
	}
	return m, nil
}
