// ABOUTME: Analytics engine producing summary, trend, and pattern reports
// ABOUTME: Pulls entries from the store, derives features, and aggregates them per request

package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"moodlog/internal/store"
)

// DefaultTrendWindow is the trailing window, in week buckets, used for
// moving-average trend values.
const DefaultTrendWindow = 4

// Summary holds aggregate statistics over the whole journal.
// Empty is set instead of an error when there are no entries.
type Summary struct {
	Empty        bool
	Count        int
	MoodCounts   map[string]int // keyed by cleaned mood label
	MeanLength   float64
	MedianLength float64
	FirstDate    string
	LastDate     string
}

// WeekBucket is one point in the trend series: aggregates for a single ISO
// week plus moving-window values trailing back up to Window buckets, so
// callers can plot a line without re-deriving buckets themselves.
type WeekBucket struct {
	Period     WeekPeriod
	Count      int
	MoodCounts map[string]int
	AvgLength  float64

	TrailingCount      int
	TrailingAvgLength  float64
	TrailingMoodCounts map[string]int
}

// Trends is the time-ordered weekly series of entry length and mood counts.
type Trends struct {
	Empty  bool
	Window int
	Weeks  []WeekBucket
}

// Patterns cross-tabulates cleaned moods against day-of-week and month, and
// surfaces the most frequent mood per weekday.
type Patterns struct {
	Empty            bool
	MoodByWeekday    map[time.Weekday]map[string]int
	MoodByMonth      map[string]map[string]int
	TopMoodByWeekday map[time.Weekday]string
}

// Engine builds the three report views. Each report call re-reads the full
// entry list and re-derives features; nothing is cached across mutations.
type Engine struct {
	entries store.EntryStore
	window  int
	logger  *slog.Logger
}

// NewEngine creates an engine with the default trend window.
func NewEngine(entries store.EntryStore) *Engine {
	return NewEngineWithWindow(entries, DefaultTrendWindow)
}

// NewEngineWithWindow creates an engine with an explicit trailing-week window.
func NewEngineWithWindow(entries store.EntryStore, window int) *Engine {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	return &Engine{
		entries: entries,
		window:  window,
		logger:  slog.Default().With("component", "analytics"),
	}
}

func (e *Engine) load(ctx context.Context) ([]DerivedEntry, error) {
	entries, err := e.entries.ListEntries(ctx, store.OrderByDateAsc)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return Derive(entries)
}

// Summary reports entry count, mood distribution, mean/median entry length,
// and the date range spanned.
func (e *Engine) Summary(ctx context.Context) (Summary, error) {
	derived, err := e.load(ctx)
	if err != nil {
		return Summary{}, err
	}
	return buildSummary(derived), nil
}

// Trends reports the weekly series with trailing moving-window values.
func (e *Engine) Trends(ctx context.Context) (Trends, error) {
	derived, err := e.load(ctx)
	if err != nil {
		return Trends{}, err
	}
	return buildTrends(derived, e.window), nil
}

// Patterns reports the mood-by-weekday and mood-by-month cross-tabs.
func (e *Engine) Patterns(ctx context.Context) (Patterns, error) {
	derived, err := e.load(ctx)
	if err != nil {
		return Patterns{}, err
	}
	return buildPatterns(derived), nil
}

func buildSummary(derived []DerivedEntry) Summary {
	if len(derived) == 0 {
		return Summary{Empty: true}
	}

	s := Summary{
		Count:      len(derived),
		MoodCounts: make(map[string]int),
		FirstDate:  derived[0].Date,
		LastDate:   derived[0].Date,
	}

	lengths := make([]int, 0, len(derived))
	var total int
	for _, d := range derived {
		s.MoodCounts[d.MoodClean]++
		lengths = append(lengths, d.EntryLength)
		total += d.EntryLength
		// Input is date-ascending, but don't depend on it
		if d.Date < s.FirstDate {
			s.FirstDate = d.Date
		}
		if d.Date > s.LastDate {
			s.LastDate = d.Date
		}
	}

	s.MeanLength = float64(total) / float64(len(lengths))
	s.MedianLength = median(lengths)
	return s
}

func median(values []int) float64 {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func buildTrends(derived []DerivedEntry, window int) Trends {
	if len(derived) == 0 {
		return Trends{Empty: true, Window: window}
	}

	type bucket struct {
		count      int
		sumLength  int
		moodCounts map[string]int
	}
	buckets := make(map[WeekPeriod]*bucket)
	for _, d := range derived {
		b, ok := buckets[d.WeekPeriod]
		if !ok {
			b = &bucket{moodCounts: make(map[string]int)}
			buckets[d.WeekPeriod] = b
		}
		b.count++
		b.sumLength += d.EntryLength
		b.moodCounts[d.MoodClean]++
	}

	periods := make([]WeekPeriod, 0, len(buckets))
	for p := range buckets {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	weeks := make([]WeekBucket, 0, len(periods))
	for i, p := range periods {
		b := buckets[p]
		wb := WeekBucket{
			Period:     p,
			Count:      b.count,
			MoodCounts: b.moodCounts,
			AvgLength:  float64(b.sumLength) / float64(b.count),
		}

		// Trailing window spans this bucket and up to window-1 prior buckets
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var tCount, tSum int
		tMoods := make(map[string]int)
		for _, tp := range periods[start : i+1] {
			tb := buckets[tp]
			tCount += tb.count
			tSum += tb.sumLength
			for mood, n := range tb.moodCounts {
				tMoods[mood] += n
			}
		}
		wb.TrailingCount = tCount
		wb.TrailingAvgLength = float64(tSum) / float64(tCount)
		wb.TrailingMoodCounts = tMoods

		weeks = append(weeks, wb)
	}

	return Trends{Window: window, Weeks: weeks}
}

func buildPatterns(derived []DerivedEntry) Patterns {
	if len(derived) == 0 {
		return Patterns{Empty: true}
	}

	p := Patterns{
		MoodByWeekday:    make(map[time.Weekday]map[string]int),
		MoodByMonth:      make(map[string]map[string]int),
		TopMoodByWeekday: make(map[time.Weekday]string),
	}

	for _, d := range derived {
		if p.MoodByWeekday[d.DayOfWeek] == nil {
			p.MoodByWeekday[d.DayOfWeek] = make(map[string]int)
		}
		p.MoodByWeekday[d.DayOfWeek][d.MoodClean]++

		if p.MoodByMonth[d.MonthName] == nil {
			p.MoodByMonth[d.MonthName] = make(map[string]int)
		}
		p.MoodByMonth[d.MonthName][d.MoodClean]++
	}

	for day, counts := range p.MoodByWeekday {
		p.TopMoodByWeekday[day] = topMood(counts)
	}

	return p
}

// topMood picks the most frequent mood; ties go to the lexicographically
// smallest label so the result is deterministic.
func topMood(counts map[string]int) string {
	var best string
	bestCount := -1
	for mood, n := range counts {
		if n > bestCount || (n == bestCount && mood < best) {
			best = mood
			bestCount = n
		}
	}
	return best
}
