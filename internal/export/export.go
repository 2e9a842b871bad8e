// ABOUTME: Journal export to JSON documents and standalone HTML reports
// ABOUTME: Entry text is treated as Markdown when rendering HTML

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"moodlog/internal/store"
)

// Document is the JSON export envelope. Entry fields mirror the on-disk
// column names so a document can be diffed against the database directly.
type Document struct {
	ExportID    string          `json:"export_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Entries     []ExportedEntry `json:"entries"`
}

// ExportedEntry is one journal record in export form.
type ExportedEntry struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Mood string `json:"mood"`
	Text string `json:"entry"`
}

// Exporter writes the full journal out in display order (newest first).
type Exporter struct {
	entries store.EntryStore
	md      goldmark.Markdown
	logger  *slog.Logger
}

// NewExporter creates an exporter over the given entry store.
func NewExporter(entries store.EntryStore) *Exporter {
	return &Exporter{
		entries: entries,
		md:      goldmark.New(),
		logger:  slog.Default().With("component", "export"),
	}
}

func (e *Exporter) document(ctx context.Context) (*Document, error) {
	entries, err := e.entries.ListEntries(ctx, store.OrderByIDDesc)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	doc := &Document{
		ExportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Entries:     make([]ExportedEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		doc.Entries = append(doc.Entries, ExportedEntry{
			ID:   entry.ID,
			Date: entry.Date,
			Mood: entry.Mood,
			Text: entry.Text,
		})
	}
	return doc, nil
}

// WriteJSON writes the journal as an indented JSON document.
func (e *Exporter) WriteJSON(ctx context.Context, w io.Writer) error {
	doc, err := e.document(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}

	e.logger.Info("exported journal as JSON", "export_id", doc.ExportID, "entries", len(doc.Entries))
	return nil
}

// WriteHTML writes the journal as a standalone HTML report, rendering each
// entry's text as Markdown.
func (e *Exporter) WriteHTML(ctx context.Context, w io.Writer) error {
	doc, err := e.document(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Mood Journal</title>\n</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>Mood Journal</h1>\n<p>Export %s, generated %s, %d entries</p>\n",
		html.EscapeString(doc.ExportID), doc.GeneratedAt.Format(time.RFC3339), len(doc.Entries))

	for _, entry := range doc.Entries {
		fmt.Fprintf(&buf, "<article>\n<h2>#%d %s (%s)</h2>\n",
			entry.ID, html.EscapeString(entry.Date), html.EscapeString(entry.Mood))
		if err := e.md.Convert([]byte(entry.Text), &buf); err != nil {
			return fmt.Errorf("rendering entry %d: %w", entry.ID, err)
		}
		buf.WriteString("</article>\n")
	}
	buf.WriteString("</body>\n</html>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	e.logger.Info("exported journal as HTML", "export_id", doc.ExportID, "entries", len(doc.Entries))
	return nil
}
