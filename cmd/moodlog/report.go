// ABOUTME: Report commands rendering analytics output: summary, trends, patterns
// ABOUTME: Each subcommand is independent and handles the empty-journal case explicitly

package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moodlog/internal/analytics"
)

func newReportCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derive statistics from the journal",
	}
	cmd.AddCommand(
		newReportSummaryCmd(configPath),
		newReportTrendsCmd(configPath),
		newReportPatternsCmd(configPath),
	)
	return cmd
}

func (a *app) engine() *analytics.Engine {
	return analytics.NewEngineWithWindow(a.store, a.cfg.Report.TrendWindowWeeks)
}

func newReportSummaryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Entry count, mood distribution, length stats, date range",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			summary, err := a.engine().Summary(ctx)
			if err != nil {
				return err
			}
			if summary.Empty {
				fmt.Println("No entries yet; nothing to summarize.")
				return nil
			}

			bold := color.New(color.Bold)
			bold.Println("Summary")
			fmt.Printf("Entries:       %d\n", summary.Count)
			fmt.Printf("Date range:    %s to %s\n", summary.FirstDate, summary.LastDate)
			fmt.Printf("Mean length:   %.1f characters\n", summary.MeanLength)
			fmt.Printf("Median length: %.1f characters\n", summary.MedianLength)
			fmt.Println("Moods:")
			for _, mood := range sortedKeys(summary.MoodCounts) {
				fmt.Printf("  %-10s %d\n", printMood(mood), summary.MoodCounts[mood])
			}
			return nil
		}),
	}
}

func newReportTrendsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Weekly entry-length and mood series with a trailing window",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			trends, err := a.engine().Trends(ctx)
			if err != nil {
				return err
			}
			if trends.Empty {
				fmt.Println("No entries yet; nothing to plot.")
				return nil
			}

			color.New(color.Bold).Printf("Weekly trends (trailing %d-week window)\n", trends.Window)
			for _, week := range trends.Weeks {
				fmt.Printf("%s  entries=%d  avg=%.1f  trailing avg=%.1f  top=%s\n",
					week.Period, week.Count, week.AvgLength, week.TrailingAvgLength,
					topOf(week.MoodCounts))
			}
			return nil
		}),
	}
}

func newReportPatternsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Mood against day-of-week and month",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			patterns, err := a.engine().Patterns(ctx)
			if err != nil {
				return err
			}
			if patterns.Empty {
				fmt.Println("No entries yet; no patterns to report.")
				return nil
			}

			bold := color.New(color.Bold)
			bold.Println("Most frequent mood per weekday")
			for day := time.Sunday; day <= time.Saturday; day++ {
				mood, ok := patterns.TopMoodByWeekday[day]
				if !ok {
					continue
				}
				fmt.Printf("  %-10s %s\n", day, printMood(mood))
			}

			bold.Println("Mood by month")
			for _, month := range sortedKeys(patterns.MoodByMonth) {
				fmt.Printf("  %s:\n", month)
				counts := patterns.MoodByMonth[month]
				for _, mood := range sortedKeys(counts) {
					fmt.Printf("    %-10s %d\n", printMood(mood), counts[mood])
				}
			}
			return nil
		}),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// topOf mirrors the engine's tie-break: highest count, then smallest label.
func topOf(counts map[string]int) string {
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
