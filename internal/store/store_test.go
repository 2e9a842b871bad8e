package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStore_CreateEntry(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEntry(ctx, "2024-03-15", "Happy", "a good day")
	require.NoError(t, err)
	require.Positive(t, id)

	entry, err := store.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, "2024-03-15", entry.Date)
	assert.Equal(t, "Happy", entry.Mood)
	assert.Equal(t, "a good day", entry.Text)
}

func TestStore_CreateEntry_DefaultsDate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEntry(ctx, "", "Relaxed", "no date supplied")
	require.NoError(t, err)

	entry, err := store.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(DateLayout), entry.Date)
}

func TestStore_CreateEntry_Validation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEntry(ctx, "2024-03-15", "", "text present")
	assert.ErrorIs(t, err, ErrEmptyMood)

	_, err = store.CreateEntry(ctx, "2024-03-15", "Sad", "")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = store.CreateEntry(ctx, "not-a-date", "Sad", "text")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestStore_UpdateEntry(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEntry(ctx, "2024-03-15", "Happy", "before")
	require.NoError(t, err)

	err = store.UpdateEntry(ctx, id, "Stressed", "after")
	require.NoError(t, err)

	entry, err := store.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Stressed", entry.Mood)
	assert.Equal(t, "after", entry.Text)
	// id and date are immutable in the update path
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, "2024-03-15", entry.Date)
}

func TestStore_UpdateEntry_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.UpdateEntry(ctx, 9999, "Happy", "text")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateEntry_Validation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEntry(ctx, "2024-03-15", "Happy", "before")
	require.NoError(t, err)

	assert.ErrorIs(t, store.UpdateEntry(ctx, id, "", "after"), ErrEmptyMood)
	assert.ErrorIs(t, store.UpdateEntry(ctx, id, "Sad", ""), ErrEmptyText)

	// Failed updates must leave the entry untouched
	entry, err := store.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Happy", entry.Mood)
	assert.Equal(t, "before", entry.Text)
}

func TestStore_DeleteEntry(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.CreateEntry(ctx, "2024-03-15", "Happy", "to be deleted")
	require.NoError(t, err)

	require.NoError(t, store.DeleteEntry(ctx, id))

	_, err = store.GetEntry(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete of the same id fails
	assert.ErrorIs(t, store.DeleteEntry(ctx, id), ErrNotFound)
}

func TestStore_IDsNeverReused(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.CreateEntry(ctx, "2024-03-15", "Happy", "first")
	require.NoError(t, err)
	require.NoError(t, store.DeleteEntry(ctx, first))

	second, err := store.CreateEntry(ctx, "2024-03-16", "Sad", "second")
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestStore_ListEntries_ByDateAsc(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Insert out of date order
	_, err := store.CreateEntry(ctx, "2024-03-20", "Happy", "later")
	require.NoError(t, err)
	_, err = store.CreateEntry(ctx, "2024-03-10", "Sad", "earlier")
	require.NoError(t, err)
	_, err = store.CreateEntry(ctx, "2024-03-15", "Relaxed", "middle")
	require.NoError(t, err)

	entries, err := store.ListEntries(ctx, OrderByDateAsc)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-10", entries[0].Date)
	assert.Equal(t, "2024-03-15", entries[1].Date)
	assert.Equal(t, "2024-03-20", entries[2].Date)
}

func TestStore_ListEntries_ByIDDesc(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.CreateEntry(ctx, "2024-03-20", "Happy", "first created")
	require.NoError(t, err)
	second, err := store.CreateEntry(ctx, "2024-03-10", "Sad", "second created")
	require.NoError(t, err)

	entries, err := store.ListEntries(ctx, OrderByIDDesc)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Most recently created first, regardless of entry date
	assert.Equal(t, second, entries[0].ID)
	assert.Equal(t, first, entries[1].ID)
}

func TestStore_ListEntries_Empty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entries, err := store.ListEntries(ctx, OrderByDateAsc)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Credential(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetSecretHash(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.SetSecretHash(ctx, "hash-one"))

	hash, err := store.GetSecretHash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-one", hash)

	// Replacement is wholesale; the old value is gone
	require.NoError(t, store.SetSecretHash(ctx, "hash-two"))
	hash, err = store.GetSecretHash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hash-two", hash)
}
