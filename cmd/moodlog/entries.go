// ABOUTME: Entry commands for the moodlog CLI: add, edit, delete, list, show
// ABOUTME: Presentation only; save and edit-session semantics live in internal/journal

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moodlog/internal/journal"
	"moodlog/internal/store"
)

var moodColor = map[string]*color.Color{
	"Happy":    color.New(color.FgGreen),
	"Excited":  color.New(color.FgHiGreen),
	"Relaxed":  color.New(color.FgCyan),
	"Sad":      color.New(color.FgBlue),
	"Angry":    color.New(color.FgRed),
	"Stressed": color.New(color.FgYellow),
}

func printMood(mood string) string {
	if c, ok := moodColor[mood]; ok {
		return c.Sprint(mood)
	}
	return mood
}

// parseEntryID rejects non-numeric ids before any store call is made.
func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q: expected a positive number", arg)
	}
	return id, nil
}

func newAddCmd(configPath *string) *cobra.Command {
	var date, mood, text string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new journal entry",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			var err error
			if mood == "" {
				fmt.Printf("How are you feeling today? (%s)\n", strings.Join(store.Moods, ", "))
				if mood, err = promptLine(reader, "Mood: "); err != nil {
					return err
				}
			}
			if text == "" {
				if text, err = promptLine(reader, "Entry: "); err != nil {
					return err
				}
			}

			id, _, err := a.journal.Save(ctx, journal.EditSession{}, date, mood, text)
			if err != nil {
				return err
			}
			fmt.Printf("Saved entry #%d\n", id)
			return nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&mood, "mood", "", "mood label")
	cmd.Flags().StringVar(&text, "text", "", "entry text")
	return cmd
}

func newEditCmd(configPath *string) *cobra.Command {
	var mood, text string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing entry's mood and text",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			entry, session, err := a.journal.BeginEdit(ctx, id)
			if err != nil {
				return err
			}

			reader := bufio.NewReader(os.Stdin)
			if mood == "" {
				prompt := fmt.Sprintf("Mood [%s]: ", entry.Mood)
				if mood, err = promptLine(reader, prompt); err != nil {
					return err
				}
				if mood == "" {
					mood = entry.Mood
				}
			}
			if text == "" {
				prompt := fmt.Sprintf("Entry [%s]: ", entry.Text)
				if text, err = promptLine(reader, prompt); err != nil {
					return err
				}
				if text == "" {
					text = entry.Text
				}
			}

			if _, _, err := a.journal.Save(ctx, session, "", mood, text); err != nil {
				return err
			}
			fmt.Printf("Updated entry #%d\n", id)
			return nil
		}),
	}

	cmd.Flags().StringVar(&mood, "mood", "", "new mood label")
	cmd.Flags().StringVar(&text, "text", "", "new entry text")
	return cmd
}

func newDeleteCmd(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				reader := bufio.NewReader(os.Stdin)
				answer, err := promptLine(reader, fmt.Sprintf("Delete entry #%d? [y/N] ", id))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := a.journal.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted entry #%d\n", id)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newListCmd(configPath *string) *cobra.Command {
	var byDate bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, most recent first",
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			order := store.OrderByIDDesc
			if byDate {
				order = store.OrderByDateAsc
			}

			entries, err := a.store.ListEntries(ctx, order)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries yet.")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("#%-4d %s  %-10s %s\n", e.ID, e.Date, printMood(e.Mood), firstLine(e.Text))
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&byDate, "by-date", false, "order by date ascending instead")
	return cmd
}

func newShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(configPath, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			entry, err := a.store.GetEntry(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("Entry #%d\n", entry.ID)
			fmt.Printf("Date: %s\n", entry.Date)
			fmt.Printf("Mood: %s\n", printMood(entry.Mood))
			fmt.Println()
			fmt.Println(entry.Text)
			return nil
		}),
	}
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + "…"
	}
	return text
}
