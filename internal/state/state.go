// Package state persists the small, user-facing selection state between
// sessions. It is the terminal equivalent of the web client's "?commessa="
// URL parameter: written in place whenever the selection changes, read back
// on startup to restore the selected-job view.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const stateFileName = "state.json"

// State is intentionally tiny and best effort: callers tolerate missing or
// invalid data.
type State struct {
	Version int `json:"version"`

	// SelectedCommessa restores the selected-job view on the next launch.
	// Empty means no selection.
	SelectedCommessa string `json:"selectedCommessa,omitempty"`
}

// Store reads and writes the state file under Dir.
type Store struct {
	Dir string
}

func (s Store) path() string {
	return filepath.Join(s.Dir, stateFileName)
}

// Load returns the persisted state, or a zero-value state when the file does
// not exist yet.
func (s Store) Load() (*State, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &State{Version: 1}, nil
	}
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{Version: 1}, nil
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt state file should never block startup.
		return &State{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

// Save writes the state atomically (temp file + rename).
func (s Store) Save(st *State) error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

// SetSelectedCommessa loads, mutates and saves in one step. An empty code
// clears the stored selection.
func (s Store) SetSelectedCommessa(code string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	st.SelectedCommessa = strings.TrimSpace(code)
	return s.Save(st)
}
