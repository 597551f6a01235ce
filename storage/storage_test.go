package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bellapacxx/bingo-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.db")
	s := Open(path)

	assert.Equal(t, models.Profile{}, s.Load(), "a fresh cache loads defaults")

	s.Save(models.Profile{
		SessionID: "s-1",
		Name:      "Abebe",
		Phone:     "0911223344",
		Stake:     25,
		AutoMark:  true,
	})

	got := s.Load()
	assert.Equal(t, "s-1", got.SessionID)
	assert.Equal(t, "Abebe", got.Name)
	assert.Equal(t, 25, got.Stake)
	assert.True(t, got.AutoMark)

	// a new process sees the same profile
	reopened := Open(path)
	assert.Equal(t, "Abebe", reopened.Load().Name)
}

func TestStoreSaveOverwrites(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "player.db"))
	s.Save(models.Profile{SessionID: "s-1", Name: "Abebe"})
	s.Save(models.Profile{SessionID: "s-2", Name: "Kebede"})

	got := s.Load()
	assert.Equal(t, "s-2", got.SessionID)
	assert.Equal(t, "Kebede", got.Name)
}

func TestStoreCorruptCacheIsNonFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database"), 0o644))

	s := Open(path)
	assert.Equal(t, models.Profile{}, s.Load(), "corruption falls back to defaults")
	assert.NotPanics(t, func() {
		s.Save(models.Profile{SessionID: "s-1"})
	})
}
