package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"nexuschronicles/internal/logging"
)

const analyzeSystemPrompt = `You are the chronicler for a post-apocalyptic RPG campaign.
You are given the player's campaign notes, one file per section. Produce a
markdown report with these headings: "## Where Things Stand",
"## Open Threads", "## Suggested Next Session". Be concrete and reference
the notes; do not invent events.`

// Text files picked up by CollectNotes.
var noteExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

const maxNoteBytes = 64 * 1024

// NoteFile is one collected campaign-note file.
type NoteFile struct {
	Path    string
	Content string
}

// CollectNotes gathers the note files under root, reading them concurrently.
// Files over 64KB are truncated; unreadable files are skipped with a log
// line. Results are ordered by path so the assembled prompt is stable.
func CollectNotes(ctx context.Context, root string) ([]NoteFile, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if noteExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no notes (.md, .txt) under %s", root)
	}

	var mu sync.Mutex
	notes := make([]NoteFile, 0, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				logging.API("skipping unreadable note %s: %v", path, err)
				return nil
			}
			if len(raw) > maxNoteBytes {
				raw = raw[:maxNoteBytes]
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			mu.Lock()
			notes = append(notes, NoteFile{Path: rel, Content: string(raw)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
	return notes, nil
}

// AnalyzeNotes runs the campaign analysis over a notes directory and returns
// a markdown report.
func AnalyzeNotes(ctx context.Context, c Completer, root string) (string, error) {
	notes, err := CollectNotes(ctx, root)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range notes {
		fmt.Fprintf(&b, "=== %s ===\n%s\n\n", n.Path, n.Content)
	}
	logging.API("analyzing %d note files under %s", len(notes), root)

	return c.Complete(ctx, analyzeSystemPrompt, b.String())
}
