package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vinayprograms/taskagent/internal/executor"
)

const wrapWidth = 76

// Console writes styled progress lines to out and reads confirmation
// answers from in.
type Console struct {
	out io.Writer
	in  *bufio.Reader
}

// New creates a Console. in may be nil when no prompts will be issued.
func New(out io.Writer, in io.Reader) *Console {
	c := &Console{out: out}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	return c
}

// Task prints the run header.
func (c *Console) Task(task string) {
	fmt.Fprintln(c.out, titleStyle.Render("Task: "+task))
	fmt.Fprintln(c.out, divider)
}

// Iteration prints the iteration marker.
func (c *Console) Iteration(n, max int) {
	fmt.Fprintln(c.out, dimStyle.Render(fmt.Sprintf("[iteration %d/%d]", n, max)))
}

// Command prints the command about to run.
func (c *Console) Command(command string, requiresSudo bool) {
	prefix := "$ "
	if requiresSudo {
		prefix = "# "
	}
	fmt.Fprintln(c.out, commandStyle.Render(prefix+command))
}

// Explanation prints the planner's one-line rationale, word-wrapped.
func (c *Console) Explanation(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(c.out, explainStyle.Render(wordwrap.String(text, wrapWidth)))
}

// Outcome prints a short status line for an execution result.
func (c *Console) Outcome(o executor.Outcome) {
	switch o.Kind {
	case executor.KindSuccess:
		fmt.Fprintln(c.out, successStyle.Render("✓ "+o.String()))
	case executor.KindCancelled, executor.KindSkipped:
		fmt.Fprintln(c.out, warnStyle.Render("- "+o.String()))
	default:
		fmt.Fprintln(c.out, errorStyle.Render("✗ "+o.String()))
	}
}

// Completion prints the final summary and output.
func (c *Console) Completion(summary, finalOutput string) {
	fmt.Fprintln(c.out, divider)
	fmt.Fprintln(c.out, successStyle.Render("Task complete"))
	if summary != "" {
		fmt.Fprintln(c.out, wordwrap.String(summary, wrapWidth))
	}
	if finalOutput != "" {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, finalOutput)
	}
}

// Aborted prints the budget-exhaustion notice.
func (c *Console) Aborted(iterations int) {
	fmt.Fprintln(c.out, divider)
	fmt.Fprintln(c.out, warnStyle.Render(
		fmt.Sprintf("Stopped after %d iterations without completing the task", iterations)))
}

// Report renders the markdown report to the terminal.
func (c *Console) Report(markdown string) {
	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		fmt.Fprintln(c.out, markdown)
		return
	}
	fmt.Fprint(c.out, rendered)
}

// Confirm asks a yes/no question and returns the answer. Anything but
// an explicit yes declines.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintln(c.out, sudoStyle.Render(prompt))
	fmt.Fprint(c.out, "[y/N] ")
	if c.in == nil {
		return false
	}
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
