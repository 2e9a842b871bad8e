package export

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog/internal/store"
)

func setupExporter(t *testing.T) (*Exporter, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewExporter(s), s
}

func TestExporter_WriteJSON(t *testing.T) {
	exporter, s := setupExporter(t)
	ctx := context.Background()

	first, err := s.CreateEntry(ctx, "2024-03-10", "Happy", "sunny day")
	require.NoError(t, err)
	second, err := s.CreateEntry(ctx, "2024-03-11", "Sad", "rainy day")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteJSON(ctx, &buf))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.NotEmpty(t, doc.ExportID)
	require.Len(t, doc.Entries, 2)
	// Display order: most recent first
	assert.Equal(t, second, doc.Entries[0].ID)
	assert.Equal(t, first, doc.Entries[1].ID)
	assert.Equal(t, "Sad", doc.Entries[0].Mood)
	assert.Equal(t, "sunny day", doc.Entries[1].Text)
}

func TestExporter_WriteJSON_Empty(t *testing.T) {
	exporter, _ := setupExporter(t)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteJSON(context.Background(), &buf))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Entries)
}

func TestExporter_WriteHTML_RendersMarkdown(t *testing.T) {
	exporter, s := setupExporter(t)
	ctx := context.Background()

	_, err := s.CreateEntry(ctx, "2024-03-10", "Happy", "a **great** day")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteHTML(ctx, &buf))

	out := buf.String()
	assert.Contains(t, out, "<strong>great</strong>")
	assert.Contains(t, out, "2024-03-10")
	assert.Contains(t, out, "Happy")
}

func TestExporter_WriteHTML_EscapesMoodLabel(t *testing.T) {
	exporter, s := setupExporter(t)
	ctx := context.Background()

	_, err := s.CreateEntry(ctx, "2024-03-10", "<Happy>", "fine")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteHTML(ctx, &buf))
	assert.Contains(t, buf.String(), "&lt;Happy&gt;")
	assert.NotContains(t, buf.String(), "<Happy>")
}

func TestExporter_ExportIDsUnique(t *testing.T) {
	exporter, _ := setupExporter(t)
	ctx := context.Background()

	var a, b bytes.Buffer
	require.NoError(t, exporter.WriteJSON(ctx, &a))
	require.NoError(t, exporter.WriteJSON(ctx, &b))

	var docA, docB Document
	require.NoError(t, json.Unmarshal(a.Bytes(), &docA))
	require.NoError(t, json.Unmarshal(b.Bytes(), &docB))
	assert.NotEqual(t, docA.ExportID, docB.ExportID)
}
