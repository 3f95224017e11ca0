package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"docslm-cli/internal/model"
)

// fileBrowser is the navigable view of a job's file tree inside the creation
// modal. Directories render first, then files with checkboxes; checkbox state
// lives on the enclosing model (pendingFiles) so it survives navigation.
type fileBrowser struct {
	commessa string
	subpath  string
	entries  []model.FileEntry
	cursor   int
	loading  bool
	errMsg   string
	// seq guards against out-of-order listing responses while the user keeps
	// navigating.
	seq int
}

// navigate replaces the browser body with a loading placeholder and fetches
// the listing for subpath ("" = job file root).
func (m *appModel) navigateBrowser(commessa, subpath string) tea.Cmd {
	m.browser.commessa = commessa
	m.browser.subpath = subpath
	m.browser.loading = true
	m.browser.errMsg = ""
	m.browser.entries = nil
	m.browser.cursor = 0
	m.browser.seq++
	seq := m.browser.seq

	gw := m.gw
	return func() tea.Msg {
		listing, err := gw.ListFiles(context.Background(), commessa, subpath)
		return browseLoadedMsg{seq: seq, listing: listing, err: err}
	}
}

func (m appModel) handleBrowseLoaded(msg browseLoadedMsg) (appModel, tea.Cmd) {
	if m.modal != modalCreateCollection || msg.seq != m.browser.seq {
		return m, nil
	}
	m.browser.loading = false
	if msg.err != nil {
		m.log.Error().Err(msg.err).
			Str("commessa", m.browser.commessa).
			Str("subpath", m.browser.subpath).
			Msg("list files failed")
		// Inline message in place of the listing; never propagates further.
		m.browser.errMsg = errMessage(msg.err)
		return m, nil
	}
	m.browser.entries = groupDirsFirst(msg.listing.Entries)
	m.browser.cursor = 0
	return m, nil
}

// groupDirsFirst keeps the server's name order within each group.
func groupDirsFirst(entries []model.FileEntry) []model.FileEntry {
	out := make([]model.FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if !e.IsDir {
			out = append(out, e)
		}
	}
	return out
}

// entryPath computes the job-root-relative path of an entry in the current
// directory.
func entryPath(subpath, name string) string {
	if subpath == "" {
		return name
	}
	return subpath + "/" + name
}

// parentSubpath truncates the last path component; "" stays "".
func parentSubpath(subpath string) string {
	if subpath == "" {
		return ""
	}
	idx := strings.LastIndex(subpath, "/")
	if idx < 0 {
		return ""
	}
	return subpath[:idx]
}

// breadcrumbs returns the root label followed by one element per path
// component of the current subpath.
func breadcrumbs(subpath string) []string {
	crumbs := []string{rootCrumbLabel}
	if subpath == "" {
		return crumbs
	}
	return append(crumbs, strings.Split(subpath, "/")...)
}

// toggleFile flips membership of a relative path in the pending selection.
// Set semantics: adding an already-present path is a no-op removal instead.
func (m *appModel) toggleFile(path string) {
	for i, p := range m.pendingFiles {
		if p == path {
			m.pendingFiles = append(m.pendingFiles[:i], m.pendingFiles[i+1:]...)
			return
		}
	}
	m.pendingFiles = append(m.pendingFiles, path)
}

func (m appModel) fileChecked(path string) bool {
	for _, p := range m.pendingFiles {
		if p == path {
			return true
		}
	}
	return false
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
