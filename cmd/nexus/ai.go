package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nexuschronicles/internal/ai"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI-assisted campaign tools (requires a Gemini API key)",
}

var aiSummarizeCmd = &cobra.Command{
	Use:   "summarize [notes-file]",
	Short: "Summarize a session-notes file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAISummarize,
}

var aiWatch bool

var aiAnalyzeCmd = &cobra.Command{
	Use:   "analyze [notes-dir]",
	Short: "Analyze a directory of campaign notes",
	Long: `Collects the markdown and text files under the directory and produces a
campaign report: where things stand, open threads, suggestions.

With --watch the directory is re-analyzed whenever a note changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runAIAnalyze,
}

func init() {
	aiAnalyzeCmd.Flags().BoolVar(&aiWatch, "watch", false, "Re-analyze when notes change")

	aiCmd.AddCommand(aiSummarizeCmd)
	aiCmd.AddCommand(aiAnalyzeCmd)
}

func newAIClient(a *app) (*ai.Client, error) {
	client, err := ai.NewClient(context.Background(), ai.Config{
		APIKey:  a.cfg.LLM.APIKey,
		Model:   a.cfg.LLM.Model,
		Timeout: parseTimeout(a.cfg.LLM.Timeout),
	})
	if err == ai.ErrUnavailable {
		return nil, fmt.Errorf("AI features need an API key; set NEXUS_API_KEY or GEMINI_API_KEY")
	}
	return client, err
}

func parseTimeout(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

func runAISummarize(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	client, err := newAIClient(a)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read notes: %w", err)
	}

	logger.Info("Summarizing notes", zap.String("file", args[0]), zap.Int("bytes", len(raw)))
	summary, err := ai.Summarize(cmd.Context(), client, string(raw))
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Session Summary\n\n")
	b.WriteString(summary.Summary)
	if len(summary.Tips) > 0 {
		b.WriteString("\n\n## Tips\n\n")
		for _, tip := range summary.Tips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
	}
	return renderMarkdown(b.String())
}

func runAIAnalyze(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	client, err := newAIClient(a)
	if err != nil {
		return err
	}

	root := args[0]
	analyze := func(ctx context.Context) error {
		report, err := ai.AnalyzeNotes(ctx, client, root)
		if err != nil {
			return err
		}
		return renderMarkdown(report)
	}

	if err := analyze(cmd.Context()); err != nil {
		return err
	}
	if !aiWatch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the root and its immediate subdirectories; notes trees are flat.
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	entries, _ := os.ReadDir(root)
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			_ = watcher.Add(filepath.Join(root, e.Name()))
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	fmt.Println("\nWatching for changes. Press Ctrl+C to stop.")

	// Debounce bursts of write events into one re-analysis.
	var pending <-chan time.Time
	for {
		select {
		case <-sigCh:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(500 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", zap.Error(err))
		case <-pending:
			pending = nil
			fmt.Println("\nNotes changed, re-analyzing...")
			if err := analyze(cmd.Context()); err != nil {
				logger.Warn("Re-analysis failed", zap.Error(err))
				fmt.Fprintf(os.Stderr, "re-analysis failed: %v\n", err)
			}
		}
	}
}

// renderMarkdown pretty-prints markdown to the terminal, falling back to raw
// text if the renderer cannot be built.
func renderMarkdown(md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)
	return nil
}
