// Package store provides persistent storage for the journal using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with two
// specialized interfaces:
//
//   - EntryStore: CRUD and ordered listing of journal entries
//   - CredentialStore: the single password-hash slot gating access
//
// SQLiteStore implements both in a single struct over one database handle,
// allowing easy composition while maintaining clear interface boundaries.
//
// # Data Models
//
//   - JournalEntry: one record (date, mood label, free text) with an
//     auto-assigned, never-reused integer id
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode and a single connection, since exactly
// one interactive session accesses the database at a time:
//
//	PRAGMA journal_mode=WAL;
//
// Database file locations:
//
//   - Production: ~/.local/share/moodlog/moodlog.db (XDG_DATA_HOME honored)
//   - Testing: t.TempDir() or :memory:
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entry does not exist
//   - ErrEmptyMood, ErrEmptyText: Save-time validation failures
//   - ErrBadDate: Entry date is not a valid YYYY-MM-DD date
//   - ErrNoCredential: Password setup has not happened yet
//
// All methods accept context.Context for cancellation support. Every
// mutating call commits durably before returning; a driver failure is
// wrapped and surfaced with the prior state intact.
package store
