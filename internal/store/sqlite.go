// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides journal entry and credential persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One interactive session owns the database; a single connection keeps
	// each mutating call atomic with respect to itself.
	db.SetMaxOpenConns(1)

	// Enable WAL mode so reads don't block on writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS journal (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			date       TEXT NOT NULL,
			mood       TEXT NOT NULL,
			entry      TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_journal_date ON journal(date);

		CREATE TABLE IF NOT EXISTS credential (
			id          INTEGER PRIMARY KEY CHECK (id = 1),
			secret_hash TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// CreateEntry inserts a new journal entry and returns its assigned id.
// An empty date defaults to today's date.
func (s *SQLiteStore) CreateEntry(ctx context.Context, date, mood, text string) (int64, error) {
	if err := validateEntryFields(mood, text); err != nil {
		return 0, err
	}
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	date = parsed.Format(DateLayout) // canonical zero-padded form

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO journal (date, mood, entry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, date, mood, text, now, now)
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted entry id: %w", err)
	}

	s.logger.Debug("created entry", "id", id, "date", date, "mood", mood)
	return id, nil
}

// GetEntry retrieves an entry by id.
// Returns ErrNotFound if the entry doesn't exist.
func (s *SQLiteStore) GetEntry(ctx context.Context, id int64) (*JournalEntry, error) {
	query := `
		SELECT id, date, mood, entry, created_at, updated_at
		FROM journal
		WHERE id = ?
	`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry replaces the mood and text of an existing entry in place.
// The id and date columns are never touched by the update path.
// Returns ErrNotFound if the entry doesn't exist.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, id int64, mood, text string) error {
	if err := validateEntryFields(mood, text); err != nil {
		return err
	}

	query := `
		UPDATE journal
		SET mood = ?, entry = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, mood, text, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated entry", "id", id, "mood", mood)
	return nil
}

// DeleteEntry removes an entry. Returns ErrNotFound if the entry doesn't
// exist, which makes a repeated delete of the same id fail the second time.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM journal WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted entry", "id", id)
	return nil
}

// ListEntries returns all journal entries in the requested order.
// OrderByDateAsc sorts oldest date first (ties broken by id) for analytics;
// OrderByIDDesc sorts most recently created first for display.
func (s *SQLiteStore) ListEntries(ctx context.Context, order ListOrder) ([]*JournalEntry, error) {
	query := `
		SELECT id, date, mood, entry, created_at, updated_at
		FROM journal
	`
	switch order {
	case OrderByIDDesc:
		query += ` ORDER BY id DESC`
	default:
		query += ` ORDER BY date ASC, id ASC`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

// GetSecretHash returns the stored credential hash.
// Returns ErrNoCredential when setup has not happened yet.
func (s *SQLiteStore) GetSecretHash(ctx context.Context) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT secret_hash FROM credential WHERE id = 1`).Scan(&hash)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("querying credential: %w", err)
	}

	return hash, nil
}

// SetSecretHash creates or replaces the single stored credential hash.
// The old value is fully discarded; there is no rollback path.
func (s *SQLiteStore) SetSecretHash(ctx context.Context, hash string) error {
	query := `
		INSERT INTO credential (id, secret_hash, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET secret_hash = excluded.secret_hash, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, hash, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}

	s.logger.Info("credential updated")
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanEntry.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*JournalEntry, error) {
	var entry JournalEntry
	var createdAtStr, updatedAtStr string

	if err := row.Scan(
		&entry.ID,
		&entry.Date,
		&entry.Mood,
		&entry.Text,
		&createdAtStr,
		&updatedAtStr,
	); err != nil {
		return nil, err
	}

	var err error
	entry.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	entry.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &entry, nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
