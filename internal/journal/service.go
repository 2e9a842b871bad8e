// ABOUTME: Journal save workflow combining edit-session state with the entry store
// ABOUTME: A save either creates a fresh entry or updates the one being edited

package journal

import (
	"context"
	"fmt"
	"log/slog"

	"moodlog/internal/store"
)

// EditSession tracks which entry, if any, the current interactive session is
// editing. The zero value means composing a fresh entry. At most one session
// is active at a time; it is passed into Save and returned updated rather
// than held as ambient state.
type EditSession struct {
	ActiveEntryID *int64
}

// Editing reports whether a save would update an existing entry.
func (s EditSession) Editing() bool {
	return s.ActiveEntryID != nil
}

// Service coordinates saves and edits against the entry store.
type Service struct {
	entries store.EntryStore
	logger  *slog.Logger
}

// NewService creates a journal service over the given entry store.
func NewService(entries store.EntryStore) *Service {
	return &Service{
		entries: entries,
		logger:  slog.Default().With("component", "journal"),
	}
}

// BeginEdit loads an entry and returns a session targeting it. The lookup
// proves the id exists before any update is issued, so a typo surfaces as
// ErrNotFound here instead of at save time.
func (s *Service) BeginEdit(ctx context.Context, id int64) (*store.JournalEntry, EditSession, error) {
	entry, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return nil, EditSession{}, err
	}
	return entry, EditSession{ActiveEntryID: &entry.ID}, nil
}

// Save persists mood and text. With an active edit session the targeted entry
// is updated in place and the session cleared; otherwise a new entry is
// created with the given date (today when empty). On failure the session is
// returned unchanged so the caller keeps its unsaved input and edit target.
func (s *Service) Save(ctx context.Context, session EditSession, date, mood, text string) (int64, EditSession, error) {
	if session.Editing() {
		id := *session.ActiveEntryID
		if err := s.entries.UpdateEntry(ctx, id, mood, text); err != nil {
			return 0, session, fmt.Errorf("updating entry %d: %w", id, err)
		}
		s.logger.Info("entry updated", "id", id)
		return id, EditSession{}, nil
	}

	id, err := s.entries.CreateEntry(ctx, date, mood, text)
	if err != nil {
		return 0, session, fmt.Errorf("creating entry: %w", err)
	}
	s.logger.Info("entry created", "id", id, "date", date)
	return id, EditSession{}, nil
}

// Delete removes an entry by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.entries.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	s.logger.Info("entry deleted", "id", id)
	return nil
}
