package planner

import (
	"encoding/json"
	"strings"
)

// DecisionKind tags the variant of a Decision.
type DecisionKind string

const (
	// DecisionContinue carries the next command to run.
	DecisionContinue DecisionKind = "continue"
	// DecisionComplete declares the task finished.
	DecisionComplete DecisionKind = "complete"
	// DecisionUnparseable preserves a reply that decoded to nothing
	// actionable. The raw text is kept for the diagnostic record.
	DecisionUnparseable DecisionKind = "unparseable"
)

// Decision is the parsed outcome of one plan request.
type Decision struct {
	Kind DecisionKind

	// DecisionContinue fields.
	Command      string
	RequiresSudo bool
	Explanation  string

	// DecisionComplete fields.
	Summary     string
	FinalOutput string

	// DecisionUnparseable field.
	Raw string
}

type continuePayload struct {
	RequiresSudo bool   `json:"requires_sudo"`
	Command      string `json:"command"`
	Explanation  string `json:"explanation"`
}

type completePayload struct {
	Summary     string `json:"summary"`
	FinalOutput string `json:"final_output"`
}

// Parse classifies a raw reply. Markdown fences and surrounding prose
// are tolerated when locating the JSON object, but the object itself
// must decode strictly; anything else is Unparseable. There is no
// best-effort field scraping: a malformed plan is skipped rather than
// half-executed.
func Parse(reply string) Decision {
	payload := extractJSON(reply)

	if strings.Contains(reply, CompletionMarker) {
		var c completePayload
		if payload == "" || !strictUnmarshal(payload, &c) {
			return Decision{Kind: DecisionUnparseable, Raw: reply}
		}
		return Decision{
			Kind:        DecisionComplete,
			Summary:     c.Summary,
			FinalOutput: c.FinalOutput,
		}
	}

	var c continuePayload
	if payload == "" || !strictUnmarshal(payload, &c) || strings.TrimSpace(c.Command) == "" {
		return Decision{Kind: DecisionUnparseable, Raw: reply}
	}
	return Decision{
		Kind:         DecisionContinue,
		Command:      c.Command,
		RequiresSudo: c.RequiresSudo,
		Explanation:  c.Explanation,
	}
}

// strictUnmarshal decodes payload into v, rejecting unknown fields.
func strictUnmarshal(payload string, v interface{}) bool {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	return dec.Decode(v) == nil
}

// extractJSON finds the first brace-balanced object in content,
// skipping any fences or prose around it.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}
