// Package history accumulates the command record of a run. The log is
// append-only and renders the full record verbatim into every prompt;
// nothing is ever truncated or rewritten, so the planner always sees
// exactly what earlier iterations saw plus the entries since.
package history

import (
	"fmt"
	"strings"

	"github.com/vinayprograms/taskagent/internal/executor"
)

// Entry records one iteration: what was planned and how it ended.
type Entry struct {
	Iteration    int
	Command      string
	RequiresSudo bool
	Explanation  string
	Outcome      executor.Outcome
}

// Log is the append-only record of a run.
type Log struct {
	entries []Entry
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry. Entries arrive in iteration order and are
// never modified afterwards.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the recorded entries in iteration order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Render formats the full log for embedding in a prompt. Rendering is
// a pure function of the entries, so rendering after an append
// reproduces the previous rendering byte for byte with the new entry
// appended.
func (l *Log) Render() string {
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(renderEntry(e))
	}
	return b.String()
}

func renderEntry(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Iteration %d ---\n", e.Iteration)
	if e.Command != "" {
		fmt.Fprintf(&b, "Command: %s\n", e.Command)
	}
	if e.RequiresSudo {
		b.WriteString("Privileges: sudo\n")
	}
	if e.Explanation != "" {
		fmt.Fprintf(&b, "Explanation: %s\n", e.Explanation)
	}
	fmt.Fprintf(&b, "Result: %s\n", e.Outcome.String())
	if e.Outcome.Output != "" {
		b.WriteString("Output:\n")
		b.WriteString(e.Outcome.Output)
		if !strings.HasSuffix(e.Outcome.Output, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
