package tui

import (
	"context"

	"docslm-cli/internal/model"
)

// Gateway is the backend surface the TUI needs. *api.Client satisfies it;
// tests substitute a fake.
type Gateway interface {
	Search(ctx context.Context, query string) ([]model.Job, error)
	ListCollections(ctx context.Context, commessa string) ([]model.Collection, error)
	ListFiles(ctx context.Context, commessa, subpath string) (model.DirectoryListing, error)
	ListCollectionFiles(ctx context.Context, commessa, collection string) ([]model.CollectionFile, error)
	CreateCollection(ctx context.Context, commessa, name string, files []string) error
	Login(ctx context.Context, username string) (model.User, error)
	SendMessage(ctx context.Context, message, modelName string) (model.ChatReply, error)
}

type pane int

const (
	paneSidebar pane = iota
	paneChat
)

type modalKind int

const (
	modalNone modalKind = iota
	modalCreateCollection
	modalJobDetails
	modalPickModel
	modalLogin
)

type sidebarFocus int

const (
	sidebarFocusInput sidebarFocus = iota
	sidebarFocusList
)

// createPhase tracks the creation modal state machine:
// browsing -> submitting -> succeeded (auto-close + reload) or failed (retry).
type createPhase int

const (
	createBrowsing createPhase = iota
	createSubmitting
	createSucceeded
	createFailed
)

type createFocus int

const (
	createFocusName createFocus = iota
	createFocusBrowser
)

type chatRole int

const (
	chatRoleUser chatRole = iota
	chatRoleAgent
)

type chatEntry struct {
	role chatRole
	text string
}

// restoreSelectionMsg triggers the startup exact-match search that restores
// the persisted selection.
type restoreSelectionMsg struct{}

// searchDebounceMsg fires when the 300ms quiescence window elapses. Stale
// timers are recognized by seq and dropped.
type searchDebounceMsg struct{ seq int }

// searchResultsMsg carries a search response. seq is the request sequence
// number; a response whose seq is not the latest issued is discarded, so a
// slow early response can never overwrite a later one.
type searchResultsMsg struct {
	seq      int
	query    string
	autoOpen bool
	jobs     []model.Job
	err      error
}

type collectionsLoadedMsg struct {
	commessa string
	cols     []model.Collection
	err      error
}

type collectionFilesMsg struct {
	commessa   string
	collection string
	files      []model.CollectionFile
	err        error
}

type browseLoadedMsg struct {
	seq     int
	listing model.DirectoryListing
	err     error
}

type createDoneMsg struct {
	commessa string
	err      error
}

// createModalCloseMsg closes the modal 1.5s after a successful submission.
type createModalCloseMsg struct{ seq int }

type loginDoneMsg struct {
	user model.User
	err  error
}

type chatReplyMsg struct {
	reply model.ChatReply
	err   error
}
