// ABOUTME: Store interfaces and data types for moodlog persistence
// ABOUTME: Defines JournalEntry, list ordering, and the EntryStore/CredentialStore interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entry does not exist
var ErrNotFound = errors.New("entry not found")

// ErrEmptyMood is returned when saving an entry without a mood
var ErrEmptyMood = errors.New("mood must not be empty")

// ErrEmptyText is returned when saving an entry without any text
var ErrEmptyText = errors.New("entry text must not be empty")

// ErrBadDate is returned when an entry date is not a valid YYYY-MM-DD date
var ErrBadDate = errors.New("date must be a valid YYYY-MM-DD date")

// ErrNoCredential is returned when no credential has been configured yet
var ErrNoCredential = errors.New("no credential configured")

// DateLayout is the canonical form of an entry date.
const DateLayout = "2006-01-02"

// Moods is the default mood choice list offered by the CLI. The store itself
// does not enforce membership; any non-empty label is accepted.
var Moods = []string{"Happy", "Angry", "Sad", "Excited", "Relaxed", "Stressed"}

// JournalEntry represents one journal record: a date, a mood label, and
// free-form text. ID and Date are immutable after creation.
type JournalEntry struct {
	ID        int64
	Date      string // YYYY-MM-DD
	Mood      string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListOrder selects the ordering of ListEntries results.
type ListOrder int

const (
	// OrderByDateAsc returns entries oldest date first, for analytics consumers.
	OrderByDateAsc ListOrder = iota
	// OrderByIDDesc returns entries most recently created first, for display.
	OrderByIDDesc
)

// EntryStore defines the interface for journal entry persistence.
// All mutating calls commit durably before returning.
type EntryStore interface {
	// CreateEntry inserts a new entry and returns its assigned id.
	// An empty date defaults to today. IDs are monotonically increasing
	// and never reused, even after deletion.
	CreateEntry(ctx context.Context, date, mood, text string) (int64, error)

	// GetEntry retrieves an entry by id. Returns ErrNotFound if absent.
	GetEntry(ctx context.Context, id int64) (*JournalEntry, error)

	// UpdateEntry replaces the mood and text of an existing entry.
	// The id and date are not touched. Returns ErrNotFound if absent.
	UpdateEntry(ctx context.Context, id int64, mood, text string) error

	// DeleteEntry removes an entry. Returns ErrNotFound if absent,
	// including on a repeated delete of the same id.
	DeleteEntry(ctx context.Context, id int64) error

	// ListEntries returns all entries in the requested order.
	ListEntries(ctx context.Context, order ListOrder) ([]*JournalEntry, error)
}

// CredentialStore defines the interface for the single stored credential.
// At most one credential exists; absence means setup is required.
type CredentialStore interface {
	// GetSecretHash returns the stored credential hash, or ErrNoCredential.
	GetSecretHash(ctx context.Context) (string, error)

	// SetSecretHash creates or wholesale replaces the stored credential hash.
	SetSecretHash(ctx context.Context, hash string) error
}

// Store combines entry and credential persistence over one database handle.
type Store interface {
	EntryStore
	CredentialStore

	// Close releases any resources held by the store
	Close() error
}

// validateEntryFields checks the save-time invariants shared by create and update.
func validateEntryFields(mood, text string) error {
	if mood == "" {
		return ErrEmptyMood
	}
	if text == "" {
		return ErrEmptyText
	}
	return nil
}
