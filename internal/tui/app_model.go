package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"docslm-cli/internal/config"
	"docslm-cli/internal/model"
	"docslm-cli/internal/state"
)

const (
	greetingLoggedOut = "Accedi al tuo account"
	rootCrumbLabel    = "Radice"
)

// Options wires the TUI to its collaborators.
type Options struct {
	Config  config.Config
	Gateway Gateway
	State   state.Store
	Logger  zerolog.Logger

	// StartCommessa restores the selected-job view on startup, the way the
	// web client restores from its "?commessa=" URL parameter. When empty the
	// persisted selection (if any) is used.
	StartCommessa string
}

type appModel struct {
	cfg config.Config
	gw  Gateway
	st  state.Store
	log zerolog.Logger

	width  int
	height int

	user     *model.User
	greeting string

	pane  pane
	modal modalKind

	// Search state machine: Idle -> Pending(debounced) -> Rendered|ErrorShown.
	searchInput  textinput.Model
	sidebarFocus sidebarFocus
	// debounceSeq identifies the most recent 300ms timer; older timers are
	// recognized and dropped when they fire.
	debounceSeq int
	// requestSeq identifies the most recent issued search request. Responses
	// with an older seq are discarded, so a slow early response cannot
	// overwrite a later one.
	requestSeq int
	searching  bool
	searchErr  string
	results    []model.Job
	resultIdx  int

	// Selected-job view.
	selectedJob        *model.Job
	collections        []model.Collection
	collectionsLoading bool
	collectionsErr     string
	// selectedCollection implements strict single-select over the collection
	// cards: choosing another card moves the selection, re-choosing the
	// current one keeps it.
	selectedCollection string
	collectionFiles    []model.CollectionFile
	collectionFilesErr string
	detailIdx          int

	// Create-collection modal. activeJobForCreation and pendingFiles are only
	// meaningful while the modal is open; every close path clears both.
	createPhase          createPhase
	activeJobForCreation string
	pendingFiles         []string
	nameInput            textinput.Model
	createFocus          createFocus
	createErr            string
	createCloseSeq       int
	browser              fileBrowser

	spinner spinner.Model

	// Chat composer.
	chatInput textarea.Model
	chatModel string
	modelList list.Model
	chatLog   []chatEntry
	chatBusy  bool
	chatErr   string

	loginInput textinput.Model
	loginBusy  bool
	loginErr   string

	pendingRestore bool
}

func newAppModel(opts Options) appModel {
	m := appModel{
		cfg:      opts.Config,
		gw:       opts.Gateway,
		st:       opts.State,
		log:      opts.Logger,
		greeting: greetingLoggedOut,
		pane:     paneSidebar,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Cerca commessa…"
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 32
	m.searchInput.Focus()

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Nome del notebook"
	m.nameInput.CharLimit = 120
	m.nameInput.Width = 40

	m.loginInput = textinput.New()
	m.loginInput.Placeholder = "Nome utente"
	m.loginInput.CharLimit = 80
	m.loginInput.Width = 32

	m.chatInput = textarea.New()
	m.chatInput.Placeholder = "Scrivi un messaggio…"
	m.chatInput.CharLimit = 0
	m.chatInput.SetWidth(60)
	m.chatInput.SetHeight(3)
	m.chatInput.ShowLineNumbers = false

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = styleAccent()

	var items []list.Item
	for _, name := range opts.Config.Chat.Models {
		items = append(items, modelItem{name: name})
	}
	m.modelList = newPickList("Modello", items)
	// First model is preselected, matching the web dropdown's initial state.
	if len(opts.Config.Chat.Models) > 0 {
		m.chatModel = opts.Config.Chat.Models[0]
	}

	start := strings.TrimSpace(opts.StartCommessa)
	if start == "" {
		if st, err := opts.State.Load(); err == nil {
			start = strings.TrimSpace(st.SelectedCommessa)
		}
	}
	if start != "" {
		m.searchInput.SetValue(start)
		m.pendingRestore = true
	}

	return m
}

// Init schedules the selection restore, the way the web client re-runs
// performSearch on page load. The search itself starts from Update so the
// request sequence lives on the retained model.
func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.pendingRestore {
		cmds = append(cmds, func() tea.Msg { return restoreSelectionMsg{} })
	}
	return tea.Batch(cmds...)
}

type modelItem struct{ name string }

func (i modelItem) Title() string       { return i.name }
func (i modelItem) Description() string { return "" }
func (i modelItem) FilterValue() string { return i.name }

func newPickList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// Chrome stays minimal inside the modal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// Bubble list defaults to quitting on ESC; here ESC means cancel.
	l.KeyMap.Quit.SetKeys("q")
	return l
}
