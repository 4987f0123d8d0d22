//go:build unit

package queuestore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/infra/queuestore"
	"cargo-backoffice/internal/usecase/scanqueue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmptyQueue(t *testing.T) {
	store := queuestore.NewFileStore(filepath.Join(t.TempDir(), "queue.json"))

	events, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, events)
}

func TestLoad_EmptyFileIsEmptyQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	events, err := queuestore.NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Nil(t, events)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := queuestore.NewFileStore(path).Load()
	require.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	store := queuestore.NewFileStore(path)

	hubID := uuid.New()
	syncedAt := time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)
	events := []scanqueue.Event{
		{
			ID:        uuid.New(),
			Type:      scan.TypeShipment,
			Code:      "TAC12345678",
			Source:    scan.SourceCamera,
			HubID:     &hubID,
			CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			Type:      scan.TypeManifest,
			Code:      "MNF-2026-000001",
			Source:    scan.SourceScanner,
			CreatedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
			Synced:    true,
			SyncedAt:  &syncedAt,
		},
	}

	require.NoError(t, store.Save(events))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, events[0].ID, loaded[0].ID)
	assert.Equal(t, "TAC12345678", loaded[0].Code)
	require.NotNil(t, loaded[0].HubID)
	assert.Equal(t, hubID, *loaded[0].HubID)
	assert.True(t, loaded[1].Synced)
	require.NotNil(t, loaded[1].SyncedAt)
	assert.True(t, syncedAt.Equal(*loaded[1].SyncedAt))
}

// Saves replace the file whole; no temp files are left behind.
func TestSave_Overwrite(t *testing.T) {
	dir := t.TempDir()
	store := queuestore.NewFileStore(filepath.Join(dir, "queue.json"))

	first := []scanqueue.Event{{ID: uuid.New(), Type: scan.TypeShipment, Code: "TAC11111111"}}
	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(nil))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
