package ai

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error
	lastUser string
}

func (f *fakeCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	f.lastUser = userPrompt
	return f.response, f.err
}

func TestSummarize_ParsesJSON(t *testing.T) {
	fake := &fakeCompleter{
		response: `{"summary": "The crew salvaged the freighter.", "tips": ["Rest before the next run", "Sell the chits"]}`,
	}

	s, err := Summarize(context.Background(), fake, "We boarded the ghost freighter...")
	require.NoError(t, err)
	assert.Equal(t, "The crew salvaged the freighter.", s.Summary)
	assert.Len(t, s.Tips, 2)
}

func TestSummarize_FencedJSON(t *testing.T) {
	fake := &fakeCompleter{
		response: "```json\n{\"summary\": \"Short.\", \"tips\": []}\n```",
	}

	s, err := Summarize(context.Background(), fake, "notes")
	require.NoError(t, err)
	assert.Equal(t, "Short.", s.Summary)
}

func TestSummarize_PlainTextFallback(t *testing.T) {
	fake := &fakeCompleter{response: "Just prose, no JSON."}

	s, err := Summarize(context.Background(), fake, "notes")
	require.NoError(t, err)
	assert.Equal(t, "Just prose, no JSON.", s.Summary)
	assert.Empty(t, s.Tips)
}

func TestSummarize_EmptyInput(t *testing.T) {
	_, err := Summarize(context.Background(), &fakeCompleter{}, "   ")
	assert.Error(t, err)
}

func TestSummarize_PropagatesModelError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limited")}
	_, err := Summarize(context.Background(), fake, "notes")
	assert.Error(t, err)
}

func writeNote(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestCollectNotes(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "session1.md", "We met the Combine.")
	writeNote(t, dir, "arcs/freighter.txt", "Ghost freighter arc.")
	writeNote(t, dir, "save.db", "binary junk")
	writeNote(t, dir, ".hidden/secret.md", "skip me")

	notes, err := CollectNotes(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Ordered by path.
	assert.Equal(t, filepath.Join("arcs", "freighter.txt"), notes[0].Path)
	assert.Equal(t, "session1.md", notes[1].Path)
}

func TestCollectNotes_EmptyDir(t *testing.T) {
	_, err := CollectNotes(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestAnalyzeNotes_AssemblesPrompt(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "session1.md", "We met the Combine.")

	fake := &fakeCompleter{response: "## Where Things Stand\nFine."}
	report, err := AnalyzeNotes(context.Background(), fake, dir)
	require.NoError(t, err)
	assert.Contains(t, report, "Where Things Stand")
	assert.Contains(t, fake.lastUser, "session1.md")
	assert.Contains(t, fake.lastUser, "We met the Combine.")
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
