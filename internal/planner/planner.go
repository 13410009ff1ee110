// Package planner turns the task and the accumulated history into a
// generation-service request and parses the reply into a decision.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinayprograms/taskagent/internal/history"
	"github.com/vinayprograms/taskagent/internal/llm"
	"github.com/vinayprograms/taskagent/internal/logging"
)

// CompletionMarker is the literal token the service includes to signal
// the task is done.
const CompletionMarker = "TASK_COMPLETE"

// Planner requests one plan step at a time from the generation service.
type Planner struct {
	client llm.Client
	log    *logging.Logger
}

// New creates a Planner backed by the given client.
func New(client llm.Client, log *logging.Logger) *Planner {
	return &Planner{
		client: client,
		log:    log.WithComponent("planner"),
	}
}

// RequestPlan sends one blocking request and parses the reply. A
// transport or API error is returned as-is and is fatal to the run;
// a reply that cannot be parsed is not an error but an Unparseable
// decision the caller records and retries past.
func (p *Planner) RequestPlan(ctx context.Context, task, envFacts string, hist *history.Log) (Decision, error) {
	prompt := buildPrompt(task, envFacts, hist)

	resp, err := p.client.Complete(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return Decision{}, fmt.Errorf("requesting plan: %w", err)
	}

	p.log.Debug("plan received", map[string]interface{}{
		"model":         p.client.ModelName(),
		"input_tokens":  resp.InputTokens,
		"output_tokens": resp.OutputTokens,
	})

	return Parse(resp.Text), nil
}

func buildPrompt(task, envFacts string, hist *history.Log) string {
	var b strings.Builder

	b.WriteString("You are an autonomous agent that completes tasks by running shell commands on the user's machine, one command at a time.\n\n")
	fmt.Fprintf(&b, "Environment: %s\n\n", envFacts)
	fmt.Fprintf(&b, "Task: %s\n\n", task)

	if hist.Len() == 0 {
		b.WriteString("No commands have been run yet.\n\n")
	} else {
		b.WriteString("Commands run so far and their results:\n\n")
		b.WriteString(hist.Render())
	}

	b.WriteString(`Reply with exactly one JSON object and nothing else.

To run the next command:
{"requires_sudo": false, "command": "<one shell command>", "explanation": "<one sentence on why>"}

When the task is complete, include the marker ` + CompletionMarker + ` and reply:
{"summary": "<what was accomplished>", "final_output": "<the result the user asked for>"}

Rules:
- One command per reply. Never chain unrelated steps.
- Commands must be non-interactive and complete on their own.
- Set "requires_sudo" to true only when root privileges are genuinely needed.
- Inspect the history before repeating a failed command.
`)

	return b.String()
}
