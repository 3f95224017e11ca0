package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, st.Version)
	assert.Empty(t, st.SelectedCommessa)
}

func TestSetAndRestoreSelection(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	require.NoError(t, s.SetSelectedCommessa("24E0123"))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "24E0123", st.SelectedCommessa)

	// Clearing the selection persists too.
	require.NoError(t, s.SetSelectedCommessa(""))
	st, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, st.SelectedCommessa)
}

func TestCorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0o644))

	s := Store{Dir: dir}
	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, st.Version)
	assert.Empty(t, st.SelectedCommessa)
}

func TestEmptyDirIsNoop(t *testing.T) {
	s := Store{}
	require.NoError(t, s.SetSelectedCommessa("24E0123"))
	st, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, st.SelectedCommessa)
}
