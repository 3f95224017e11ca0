package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docslm-cli/internal/model"
)

// selectJob switches the sidebar to the selected-job view: summary on top,
// collections loaded asynchronously beneath. Replaces any previously rendered
// results/collections wholesale, so re-selecting is idempotent.
func (m *appModel) selectJob(job model.Job) tea.Cmd {
	m.selectedJob = &job
	m.results = nil
	m.resultIdx = 0
	m.detailIdx = 0
	m.selectedCollection = ""
	m.collectionFiles = nil
	m.collectionFilesErr = ""
	m.sidebarFocus = sidebarFocusList
	m.searchInput.SetValue(job.Code)

	if err := m.st.SetSelectedCommessa(job.Code); err != nil {
		m.log.Warn().Err(err).Str("commessa", job.Code).Msg("persist selection")
	}
	return m.loadCollections(job.Code)
}

func (m *appModel) loadCollections(commessa string) tea.Cmd {
	m.collections = nil
	m.collectionsErr = ""
	m.collectionsLoading = true

	gw := m.gw
	return func() tea.Msg {
		cols, err := gw.ListCollections(context.Background(), commessa)
		return collectionsLoadedMsg{commessa: commessa, cols: cols, err: err}
	}
}

func (m appModel) handleCollectionsLoaded(msg collectionsLoadedMsg) (appModel, tea.Cmd) {
	// The selection may have moved while the request was in flight; only the
	// current job's collections get rendered.
	if m.selectedJob == nil || m.selectedJob.Code != msg.commessa {
		return m, nil
	}
	m.collectionsLoading = false
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("commessa", msg.commessa).Msg("list collections failed")
		m.collectionsErr = "Errore nel caricamento delle collezioni: " + errMessage(msg.err)
		return m, nil
	}
	m.collections = msg.cols
	if m.detailIdx > len(m.collections) {
		m.detailIdx = 0
	}
	return m, nil
}

// selectCollection applies the strict single-select card policy and loads the
// collection's stored file metadata for the detail pane.
func (m *appModel) selectCollection(col model.Collection) tea.Cmd {
	m.selectedCollection = col.Name
	m.collectionFiles = nil
	m.collectionFilesErr = ""

	commessa := m.selectedJob.Code
	gw := m.gw
	return func() tea.Msg {
		files, err := gw.ListCollectionFiles(context.Background(), commessa, col.Name)
		return collectionFilesMsg{commessa: commessa, collection: col.Name, files: files, err: err}
	}
}

func (m appModel) handleCollectionFiles(msg collectionFilesMsg) (appModel, tea.Cmd) {
	if m.selectedJob == nil || m.selectedJob.Code != msg.commessa || m.selectedCollection != msg.collection {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("collection", msg.collection).Msg("list collection files failed")
		m.collectionFilesErr = errMessage(msg.err)
		return m, nil
	}
	m.collectionFiles = msg.files
	return m, nil
}

// jobSummary mirrors the web client's selected-job description line.
func jobSummary(job model.Job, width int) string {
	text := fmt.Sprintf(
		"Commessa destinata a %s in carico allo stabilimento di %s. Scopo: %s. Project Manager incaricato: %s. Stato: %s (%s).",
		job.Customer, job.Site, job.Goal, job.ProjectManager, job.Status, job.EndDate,
	)
	return lipgloss.NewStyle().Width(width).Render(text)
}

// jobDetailRows lists the labelled fields shown in the job-details modal.
func jobDetailRows(job model.Job) []string {
	fields := []struct {
		label string
		value string
	}{
		{"Cliente", job.Customer},
		{"Società", job.Company},
		{"Tipo", job.Typeof},
		{"Apertura", job.StartDate},
		{"N° ordine", job.OrderNumber},
		{"PM", job.ProjectManager},
		{"Stato", job.Status},
		{"Consegna", job.EndDate},
		{"Stabilimento", job.Site},
		{"Resa", job.Output},
		{"Scopo", job.Goal},
	}
	label := styleMuted()
	rows := make([]string, 0, len(fields))
	for _, f := range fields {
		value := f.value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		rows = append(rows, fmt.Sprintf("%s  %s", label.Render(fmt.Sprintf("%-12s", f.label)), value))
	}
	return rows
}
