package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"docslm-cli/internal/config"
	"docslm-cli/internal/model"
	"docslm-cli/internal/state"
)

// fakeGateway lets tests script backend behavior per call. Unset functions
// answer with zero values.
type fakeGateway struct {
	search              func(query string) ([]model.Job, error)
	listCollections     func(commessa string) ([]model.Collection, error)
	listFiles           func(commessa, subpath string) (model.DirectoryListing, error)
	listCollectionFiles func(commessa, collection string) ([]model.CollectionFile, error)
	createCollection    func(commessa, name string, files []string) error
	login               func(username string) (model.User, error)
	sendMessage         func(message, modelName string) (model.ChatReply, error)
}

func (f *fakeGateway) Search(_ context.Context, query string) ([]model.Job, error) {
	if f.search != nil {
		return f.search(query)
	}
	return nil, nil
}

func (f *fakeGateway) ListCollections(_ context.Context, commessa string) ([]model.Collection, error) {
	if f.listCollections != nil {
		return f.listCollections(commessa)
	}
	return nil, nil
}

func (f *fakeGateway) ListFiles(_ context.Context, commessa, subpath string) (model.DirectoryListing, error) {
	if f.listFiles != nil {
		return f.listFiles(commessa, subpath)
	}
	return model.DirectoryListing{Commessa: commessa, Subpath: subpath}, nil
}

func (f *fakeGateway) ListCollectionFiles(_ context.Context, commessa, collection string) ([]model.CollectionFile, error) {
	if f.listCollectionFiles != nil {
		return f.listCollectionFiles(commessa, collection)
	}
	return nil, nil
}

func (f *fakeGateway) CreateCollection(_ context.Context, commessa, name string, files []string) error {
	if f.createCollection != nil {
		return f.createCollection(commessa, name, files)
	}
	return nil
}

func (f *fakeGateway) Login(_ context.Context, username string) (model.User, error) {
	if f.login != nil {
		return f.login(username)
	}
	return model.User{Name: username}, nil
}

func (f *fakeGateway) SendMessage(_ context.Context, message, modelName string) (model.ChatReply, error) {
	if f.sendMessage != nil {
		return f.sendMessage(message, modelName)
	}
	return model.ChatReply{}, nil
}

func newTestModel(t *testing.T, gw Gateway) appModel {
	t.Helper()
	cfg := config.Config{}
	cfg.Chat.Models = []string{"DocsLM Standard", "DocsLM Ragionamento"}
	m := newAppModel(Options{
		Config:  cfg,
		Gateway: gw,
		State:   state.Store{Dir: t.TempDir()},
		Logger:  zerolog.Nop(),
	})
	m.width = 120
	m.height = 40
	return m
}

// collectMsgs executes a command (flattening batches) and returns the produced
// messages. Fake gateway calls are synchronous, so the messages are available
// immediately; ticker-based messages are returned too and can be ignored.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver runs a command and feeds one message of type M back through Update.
func deliver[M tea.Msg](t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(M); ok {
			next, _ := m.Update(msg)
			return next.(appModel)
		}
	}
	t.Fatalf("command produced no message of the wanted type")
	return m
}

func pressKey(t *testing.T, m appModel, key tea.KeyMsg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(appModel), cmd
}

func typeRune(t *testing.T, m appModel, r rune) (appModel, tea.Cmd) {
	t.Helper()
	return pressKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}
