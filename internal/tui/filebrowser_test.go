package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docslm-cli/internal/model"
)

func TestEntryPath(t *testing.T) {
	if got := entryPath("", "a.pdf"); got != "a.pdf" {
		t.Fatalf("root entryPath = %q", got)
	}
	if got := entryPath("docs/specs", "a.pdf"); got != "docs/specs/a.pdf" {
		t.Fatalf("nested entryPath = %q", got)
	}
}

func TestParentSubpath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"docs", ""},
		{"docs/specs", "docs"},
		{"a/b/c", "a/b"},
	}
	for _, c := range cases {
		if got := parentSubpath(c.in); got != c.want {
			t.Errorf("parentSubpath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := breadcrumbs("")
	if len(got) != 1 || got[0] != "Radice" {
		t.Fatalf("root breadcrumbs = %v", got)
	}
	got = breadcrumbs("docs/specs")
	if len(got) != 3 || got[1] != "docs" || got[2] != "specs" {
		t.Fatalf("nested breadcrumbs = %v", got)
	}
}

func TestToggleFileSetSemantics(t *testing.T) {
	m := newTestModel(t, &fakeGateway{})

	m.toggleFile("a.pdf")
	m.toggleFile("docs/b.pdf")
	m.toggleFile("a.pdf")
	if len(m.pendingFiles) != 1 || m.pendingFiles[0] != "docs/b.pdf" {
		t.Fatalf("pendingFiles = %v", m.pendingFiles)
	}
	if m.fileChecked("a.pdf") {
		t.Fatal("a.pdf still checked after the second toggle")
	}
	if !m.fileChecked("docs/b.pdf") {
		t.Fatal("docs/b.pdf not checked")
	}
}

func TestDirsGroupedFirst(t *testing.T) {
	got := groupDirsFirst([]model.FileEntry{
		{Name: "a.pdf"},
		{Name: "docs", IsDir: true},
		{Name: "b.pdf"},
		{Name: "img", IsDir: true},
	})
	want := []string{"docs", "img", "a.pdf", "b.pdf"}
	for i, w := range want {
		if got[i].Name != w {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSelectionSurvivesNavigation(t *testing.T) {
	listings := map[string]model.DirectoryListing{
		"": {Entries: []model.FileEntry{
			{Name: "docs", IsDir: true},
			{Name: "a.pdf"},
		}},
		"docs": {Entries: []model.FileEntry{
			{Name: "b.pdf"},
		}},
	}
	gw := &fakeGateway{listFiles: func(commessa, subpath string) (model.DirectoryListing, error) {
		l := listings[subpath]
		l.Commessa = commessa
		l.Subpath = subpath
		return l, nil
	}}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, listings[""].Entries)

	// Check the root file: cursor row 1 (after the directory), space toggles.
	m.createFocus = createFocusBrowser
	m.browser.cursor = 1
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.fileChecked("a.pdf") {
		t.Fatal("a.pdf not checked")
	}

	// Enter the directory and check the nested file.
	m.browser.cursor = 0
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)
	m = deliver[browseLoadedMsg](t, m, cmd)
	if m.browser.subpath != "docs" {
		t.Fatalf("subpath = %q after entering docs", m.browser.subpath)
	}
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.fileChecked("docs/b.pdf") {
		t.Fatal("docs/b.pdf not checked")
	}

	// Navigate back up: both selections survive.
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(appModel)
	m = deliver[browseLoadedMsg](t, m, cmd)
	if m.browser.subpath != "" {
		t.Fatalf("subpath = %q after going up", m.browser.subpath)
	}
	if !m.fileChecked("a.pdf") || !m.fileChecked("docs/b.pdf") {
		t.Fatalf("selection lost across navigation: %v", m.pendingFiles)
	}
	if len(m.pendingFiles) != 2 {
		t.Fatalf("pendingFiles = %v", m.pendingFiles)
	}
}

func TestSpaceIgnoresDirectories(t *testing.T) {
	entries := []model.FileEntry{{Name: "docs", IsDir: true}}
	gw := &fakeGateway{listFiles: func(commessa, subpath string) (model.DirectoryListing, error) {
		return model.DirectoryListing{Commessa: commessa, Entries: entries}, nil
	}}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, entries)

	m.createFocus = createFocusBrowser
	m.browser.cursor = 0
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if len(m.pendingFiles) != 0 {
		t.Fatalf("directory was added to the selection: %v", m.pendingFiles)
	}
}

func TestStaleBrowseResponseDiscarded(t *testing.T) {
	gw := &fakeGateway{listFiles: func(commessa, subpath string) (model.DirectoryListing, error) {
		name := "slow.pdf"
		if subpath == "fast" {
			name = "fast.pdf"
		}
		return model.DirectoryListing{Commessa: commessa, Subpath: subpath, Entries: []model.FileEntry{{Name: name}}}, nil
	}}
	m := newTestModel(t, gw)
	m = openTestCreateModal(t, m, nil)

	slowCmd := m.navigateBrowser("24E0123", "slow")
	fastCmd := m.navigateBrowser("24E0123", "fast")

	m = deliver[browseLoadedMsg](t, m, fastCmd)
	m = deliver[browseLoadedMsg](t, m, slowCmd)

	if len(m.browser.entries) != 1 || m.browser.entries[0].Name != "fast.pdf" {
		t.Fatalf("stale listing overwrote the browser: %+v", m.browser.entries)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, c := range cases {
		if got := formatSize(c.in); got != c.want {
			t.Errorf("formatSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
