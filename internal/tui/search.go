package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"docslm-cli/internal/api"
	"docslm-cli/internal/model"
)

const searchDebounce = 300 * time.Millisecond

// errMessage maps gateway failures to the inline messages shown to the user.
func errMessage(err error) string {
	if msg, ok := api.IsAPIError(err); ok {
		return "Errore: " + msg
	}
	return "Errore di connessione"
}

// normalizeCode strips all whitespace and lowercases, the comparison used for
// the exact-match auto-open flow.
func normalizeCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// restartDebounce cancels any pending timer and schedules a new one. Only the
// timer carrying the latest seq fires a search, so rapid typing issues at
// most one request per 300ms of quiescence.
func (m *appModel) restartDebounce() tea.Cmd {
	m.debounceSeq++
	seq := m.debounceSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// searchNow dispatches the query immediately. Empty/whitespace-only queries
// clear everything locally without a network call.
func (m *appModel) searchNow(autoOpen bool) tea.Cmd {
	query := m.searchInput.Value()
	if strings.TrimSpace(query) == "" {
		m.clearSearch()
		return nil
	}

	m.requestSeq++
	seq := m.requestSeq
	m.searching = true
	m.searchErr = ""

	gw := m.gw
	return func() tea.Msg {
		jobs, err := gw.Search(context.Background(), query)
		return searchResultsMsg{seq: seq, query: query, autoOpen: autoOpen, jobs: jobs, err: err}
	}
}

// clearSearch is the empty-query transition: drop results and the selected
// job, and clear the persisted selection parameter. Bumping requestSeq here
// invalidates any response still in flight, so it cannot repopulate the
// sidebar after the clear.
func (m *appModel) clearSearch() {
	m.requestSeq++
	m.results = nil
	m.resultIdx = 0
	m.searching = false
	m.searchErr = ""
	m.selectedJob = nil
	m.collections = nil
	m.collectionsErr = ""
	m.selectedCollection = ""
	m.collectionFiles = nil
	m.collectionFilesErr = ""
	m.sidebarFocus = sidebarFocusInput
	if err := m.st.SetSelectedCommessa(""); err != nil {
		m.log.Warn().Err(err).Msg("clear persisted selection")
	}
}

func (m appModel) handleSearchResults(msg searchResultsMsg) (appModel, tea.Cmd) {
	if msg.seq != m.requestSeq {
		// A later query has been issued since; this response is stale.
		m.log.Debug().Int("seq", msg.seq).Int("latest", m.requestSeq).Msg("dropping stale search response")
		return m, nil
	}
	m.searching = false

	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("query", msg.query).Msg("search failed")
		m.searchErr = errMessage(msg.err)
		m.results = nil
		return m, nil
	}
	m.searchErr = ""

	if msg.autoOpen {
		want := normalizeCode(msg.query)
		var matches []model.Job
		for _, job := range msg.jobs {
			if job.Code != "" && normalizeCode(job.Code) == want {
				matches = append(matches, job)
			}
		}
		if len(matches) == 1 {
			m.searchInput.SetValue(matches[0].Code)
			cmd := m.selectJob(matches[0])
			return m, cmd
		}
	}

	m.results = msg.jobs
	m.resultIdx = 0
	m.selectedJob = nil
	m.collections = nil
	m.collectionsErr = ""
	m.selectedCollection = ""
	m.collectionFiles = nil
	m.collectionFilesErr = ""
	return m, nil
}
