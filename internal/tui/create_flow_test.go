package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docslm-cli/internal/api"
	"docslm-cli/internal/model"
)

func TestSanitizeCollectionName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"My Report 2024", "My_Report_2024"},
		{"  padded  name ", "padded_name"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
		{"già_pulito", "già_pulito"},
		{"   ", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := sanitizeCollectionName(c.in); got != c.want {
			t.Errorf("sanitizeCollectionName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func openTestCreateModal(t *testing.T, m appModel, entries []model.FileEntry) appModel {
	t.Helper()
	job := model.Job{Code: "24E0123"}
	m.selectedJob = &job
	cmd := m.openCreateModal(job.Code)
	if cmd == nil {
		t.Fatal("opening the modal did not load the file root")
	}
	if len(entries) > 0 {
		return deliver[browseLoadedMsg](t, m, cmd)
	}
	return m
}

func TestOpenCreateModalStartsClean(t *testing.T) {
	gw := &fakeGateway{listFiles: func(commessa, subpath string) (model.DirectoryListing, error) {
		if subpath != "" {
			t.Fatalf("initial browse subpath = %q, want root", subpath)
		}
		return model.DirectoryListing{Commessa: commessa, Entries: []model.FileEntry{{Name: "a.pdf"}}}, nil
	}}
	m := newTestModel(t, gw)

	// Leftovers from an earlier (cancelled) session must not leak in.
	m.pendingFiles = []string{"stale.pdf"}
	m.nameInput.SetValue("stale name")

	m = openTestCreateModal(t, m, []model.FileEntry{{Name: "a.pdf"}})

	if m.modal != modalCreateCollection || m.createPhase != createBrowsing {
		t.Fatalf("modal=%v phase=%v", m.modal, m.createPhase)
	}
	if len(m.pendingFiles) != 0 {
		t.Fatalf("pendingFiles = %v, want empty", m.pendingFiles)
	}
	if m.nameInput.Value() != "" {
		t.Fatalf("name input = %q, want empty", m.nameInput.Value())
	}
	if m.activeJobForCreation != "24E0123" {
		t.Fatalf("activeJobForCreation = %q", m.activeJobForCreation)
	}
}

func TestSubmitEmptyNameIsSilentNoop(t *testing.T) {
	calls := 0
	gw := &fakeGateway{createCollection: func(string, string, []string) error {
		calls++
		return nil
	}}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)

	for _, name := range []string{"", "   ", "\t\n"} {
		m.nameInput.SetValue(name)
		if cmd := m.submitCreate(); cmd != nil {
			t.Fatalf("name %q triggered a submission", name)
		}
		if m.createPhase != createBrowsing {
			t.Fatalf("name %q changed phase to %v", name, m.createPhase)
		}
	}
	if calls != 0 {
		t.Fatalf("gateway called %d times", calls)
	}
}

func TestSubmitSendsSanitizedNameAndSelection(t *testing.T) {
	var gotName string
	var gotFiles []string
	gw := &fakeGateway{
		createCollection: func(commessa, name string, files []string) error {
			if commessa != "24E0123" {
				t.Fatalf("commessa = %q", commessa)
			}
			gotName = name
			gotFiles = files
			return nil
		},
		listCollections: func(string) ([]model.Collection, error) {
			return []model.Collection{{Name: "My_Report_2024"}}, nil
		},
	}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)

	m.nameInput.SetValue("My Report 2024")
	m.pendingFiles = []string{"spec.pdf", "docs/manual.pdf"}

	cmd := m.submitCreate()
	if cmd == nil {
		t.Fatal("no submission command")
	}
	if m.createPhase != createSubmitting {
		t.Fatalf("phase = %v, want submitting", m.createPhase)
	}

	// Single flight: a second submit while in flight is ignored.
	if second := m.submitCreate(); second != nil {
		t.Fatal("overlapping submission allowed")
	}

	m = deliver[createDoneMsg](t, m, cmd)
	if gotName != "My_Report_2024" {
		t.Fatalf("submitted name = %q", gotName)
	}
	if len(gotFiles) != 2 || gotFiles[0] != "spec.pdf" || gotFiles[1] != "docs/manual.pdf" {
		t.Fatalf("submitted files = %v", gotFiles)
	}
	if m.createPhase != createSucceeded {
		t.Fatalf("phase = %v, want succeeded", m.createPhase)
	}

	// The success notice auto-closes and the collection list reloads.
	next, reload := m.Update(createModalCloseMsg{seq: m.createCloseSeq})
	m = next.(appModel)
	if m.modal != modalNone {
		t.Fatal("modal still open after the success close")
	}
	if len(m.pendingFiles) != 0 || m.activeJobForCreation != "" {
		t.Fatal("creation session state not cleared on close")
	}
	if reload == nil {
		t.Fatal("no reload command after the success close")
	}
	m = deliver[collectionsLoadedMsg](t, m, reload)
	if len(m.collections) != 1 || m.collections[0].Name != "My_Report_2024" {
		t.Fatalf("collections after reload = %+v", m.collections)
	}
}

func TestStaleAutoCloseIgnored(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)
	m.createPhase = createSucceeded
	m.createCloseSeq = 3

	next, _ := m.Update(createModalCloseMsg{seq: 2})
	m = next.(appModel)
	if m.modal != modalCreateCollection {
		t.Fatal("stale auto-close timer closed the modal")
	}
}

func TestSubmitFailureKeepsSelectionAndRetries(t *testing.T) {
	fail := true
	gw := &fakeGateway{createCollection: func(_, _ string, _ []string) error {
		if fail {
			return &api.APIError{Message: "nome duplicato"}
		}
		return nil
	}}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)

	m.nameInput.SetValue("Report")
	m.pendingFiles = []string{"a.pdf", "b.pdf"}

	cmd := m.submitCreate()
	m = deliver[createDoneMsg](t, m, cmd)

	if m.createPhase != createFailed {
		t.Fatalf("phase = %v, want failed", m.createPhase)
	}
	if m.createErr != "Errore nella creazione del notebook: Errore: nome duplicato" {
		t.Fatalf("createErr = %q", m.createErr)
	}
	if m.modal != modalCreateCollection {
		t.Fatal("modal closed on failure")
	}
	if len(m.pendingFiles) != 2 {
		t.Fatalf("file selection lost on failure: %v", m.pendingFiles)
	}

	// Retry with the same state succeeds.
	fail = false
	cmd = m.submitCreate()
	if cmd == nil {
		t.Fatal("retry submission blocked")
	}
	m = deliver[createDoneMsg](t, m, cmd)
	if m.createPhase != createSucceeded {
		t.Fatalf("retry phase = %v, want succeeded", m.createPhase)
	}
}

func TestNetworkFailureMessage(t *testing.T) {
	gw := &fakeGateway{createCollection: func(_, _ string, _ []string) error {
		return &api.NetworkError{Err: errors.New("refused")}
	}}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)
	m.nameInput.SetValue("Report")

	cmd := m.submitCreate()
	m = deliver[createDoneMsg](t, m, cmd)
	if m.createErr != "Errore nella creazione del notebook: Errore di connessione" {
		t.Fatalf("createErr = %q", m.createErr)
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)
	m.createPhase = createSubmitting

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalCreateCollection {
		t.Fatal("esc closed the modal mid-submission")
	}
	m, _ = typeRune(t, m, 'x')
	if m.nameInput.Value() != "" {
		t.Fatal("typing edited the name mid-submission")
	}
}

func TestEscClosesAndClearsSession(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)
	m.pendingFiles = []string{"a.pdf"}
	m.nameInput.SetValue("Report")

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone {
		t.Fatal("esc did not close the modal")
	}
	if m.pendingFiles != nil || m.activeJobForCreation != "" {
		t.Fatal("session state survived the close")
	}
}
