package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const summarizeSystemPrompt = `You are the chronicler for a post-apocalyptic RPG campaign.
Summarize the player's session notes. Respond with JSON only, matching:
{"summary": "...", "tips": ["...", "..."]}
"summary" is 2-4 sentences of what happened. "tips" is up to 3 short,
actionable suggestions for the next session. No markdown, no code fences.`

// Summary is the structured result of a session-note summarization.
type Summary struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

// Summarize condenses free-form session notes into a summary plus tips. The
// model is asked for JSON; a response that is not valid JSON is degraded into
// a plain summary with no tips rather than treated as an error.
func Summarize(ctx context.Context, c Completer, notes string) (*Summary, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, fmt.Errorf("nothing to summarize")
	}

	resp, err := c.Complete(ctx, summarizeSystemPrompt, notes)
	if err != nil {
		return nil, err
	}

	var s Summary
	if err := json.Unmarshal([]byte(stripFences(resp)), &s); err != nil || s.Summary == "" {
		return &Summary{Summary: resp}, nil
	}
	return &s, nil
}

// stripFences removes a markdown code fence wrapper, which some models add
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
