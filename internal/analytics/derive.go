// ABOUTME: Pure per-entry feature derivation feeding the analytics engine
// ABOUTME: Computes entry length, cleaned mood label, weekday, month, and ISO week period

package analytics

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"moodlog/internal/store"
)

// WeekPeriod identifies the ISO calendar week containing a date, used as an
// aggregation bucket.
type WeekPeriod struct {
	Year int
	Week int
}

func (w WeekPeriod) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// Before reports whether w is an earlier week than other.
func (w WeekPeriod) Before(other WeekPeriod) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

// DerivedEntry is a JournalEntry enriched with computed features. It is never
// persisted; it is recomputed from the stored entry on every analytics request.
type DerivedEntry struct {
	store.JournalEntry

	EntryLength int
	MoodClean   string
	DayOfWeek   time.Weekday
	MonthName   string
	WeekPeriod  WeekPeriod
}

// Derive transforms stored entries into derived entries, order-preserving and
// side-effect-free. Each entry is computed independently. An entry whose date
// fails to parse is a contract violation by the caller and surfaces as an
// error rather than being repaired. An empty input yields an empty output.
func Derive(entries []*store.JournalEntry) ([]DerivedEntry, error) {
	derived := make([]DerivedEntry, 0, len(entries))
	for _, entry := range entries {
		d, err := deriveOne(entry)
		if err != nil {
			return nil, fmt.Errorf("deriving entry %d: %w", entry.ID, err)
		}
		derived = append(derived, d)
	}
	return derived, nil
}

func deriveOne(entry *store.JournalEntry) (DerivedEntry, error) {
	day, err := time.Parse(store.DateLayout, entry.Date)
	if err != nil {
		return DerivedEntry{}, fmt.Errorf("parsing date %q: %w", entry.Date, err)
	}

	year, week := day.ISOWeek()
	return DerivedEntry{
		JournalEntry: *entry,
		EntryLength:  utf8.RuneCountInString(entry.Text),
		MoodClean:    cleanMood(entry.Mood),
		DayOfWeek:    day.Weekday(),
		MonthName:    day.Month().String(),
		WeekPeriod:   WeekPeriod{Year: year, Week: week},
	}, nil
}

// cleanMood strips everything that is not a letter, digit, or whitespace
// (punctuation, emoji) and trims the result, so decorated labels like
// "😊 Happy!" aggregate under the same bucket as "Happy".
func cleanMood(mood string) string {
	var b strings.Builder
	for _, r := range mood {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
