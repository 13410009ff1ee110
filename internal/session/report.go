package session

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vinayprograms/taskagent/internal/history"
)

// Report is everything the run report needs. A run that exhausts its
// iteration budget still gets a report, marked incomplete, listing
// every command that was issued.
type Report struct {
	Status      string
	Summary     string
	FinalOutput string
	Iterations  int
	Entries     []history.Entry
}

// WriteReport renders the report to report.md and returns its path
// along with the rendered markdown.
func (s *Session) WriteReport(r Report) (string, string, error) {
	md := s.renderReport(r)
	path := s.ReportPath()
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return "", "", fmt.Errorf("writing report: %w", err)
	}
	return path, md, nil
}

func (s *Session) renderReport(r Report) string {
	var b strings.Builder

	b.WriteString("# Task Report\n\n")
	fmt.Fprintf(&b, "- **Session:** %s\n", s.ID)
	fmt.Fprintf(&b, "- **Run ID:** %s\n", s.RunID)
	fmt.Fprintf(&b, "- **Task:** %s\n", s.Task)
	fmt.Fprintf(&b, "- **Status:** %s\n", r.Status)
	fmt.Fprintf(&b, "- **Started:** %s\n", s.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Iterations:** %d\n\n", r.Iterations)

	if r.Status == StatusAborted {
		b.WriteString("**Incomplete:** the iteration budget was exhausted before the task finished.\n\n")
	}

	if r.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(r.Summary)
		b.WriteString("\n\n")
	}
	if r.FinalOutput != "" {
		b.WriteString("## Result\n\n")
		b.WriteString(r.FinalOutput)
		b.WriteString("\n\n")
	}

	if len(r.Entries) > 0 {
		b.WriteString("## Commands\n\n")
		for _, e := range r.Entries {
			if e.Command == "" {
				fmt.Fprintf(&b, "%d. _(no command)_: %s\n", e.Iteration, e.Outcome.String())
				continue
			}
			fmt.Fprintf(&b, "%d. `%s`: %s\n", e.Iteration, e.Command, e.Outcome.String())
		}
		b.WriteString("\n")
	}

	return b.String()
}
