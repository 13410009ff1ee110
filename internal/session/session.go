// Package session owns the per-run output directory and its artifacts.
// Everything written here is append-only for the lifetime of the run:
// commands.log (one line per issued command), output.log (the full
// structured log), per-iteration artifact files, and report.md.
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vinayprograms/taskagent/internal/history"
)

// Status values for a run.
const (
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusAborted  = "aborted"
	StatusFailed   = "failed"
)

// Session is a run-scoped output directory. One goroutine writes it.
type Session struct {
	ID        string
	RunID     string
	Task      string
	Dir       string
	StartedAt time.Time

	mu       sync.Mutex
	commands *os.File
	output   *os.File
}

// New creates the session directory under baseDir and opens its log
// files. The directory name is the wall-clock start time, so listing
// baseDir sorts runs chronologically.
func New(baseDir, task string) (*Session, error) {
	id := time.Now().Format("20060102-150405")
	dir := filepath.Join(baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	commands, err := os.Create(filepath.Join(dir, "commands.log"))
	if err != nil {
		return nil, fmt.Errorf("creating commands log: %w", err)
	}
	output, err := os.Create(filepath.Join(dir, "output.log"))
	if err != nil {
		commands.Close()
		return nil, fmt.Errorf("creating output log: %w", err)
	}

	return &Session{
		ID:        id,
		RunID:     uuid.NewString(),
		Task:      task,
		Dir:       dir,
		StartedAt: time.Now(),
		commands:  commands,
		output:    output,
	}, nil
}

// OutputWriter returns the writer for output.log. Hand it to the
// logger (via io.MultiWriter with stderr) to keep a durable copy of
// every log line.
func (s *Session) OutputWriter() io.Writer {
	return s.output
}

// RecordCommand appends one line to commands.log.
func (s *Session) RecordCommand(iteration int, command string, requiresSudo bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := ""
	if requiresSudo {
		prefix = "sudo "
	}
	_, err := fmt.Fprintf(s.commands, "%s [%d] %s%s\n",
		time.Now().Format(time.RFC3339), iteration, prefix, command)
	return err
}

// RecordIteration writes the full artifact file for one iteration.
func (s *Session) RecordIteration(e history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Iteration: %d\n", e.Iteration)
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
		b.WriteString("\n")
		b.WriteString(e.Outcome.Output)
		if !strings.HasSuffix(e.Outcome.Output, "\n") {
			b.WriteString("\n")
		}
	}

	path := filepath.Join(s.Dir, fmt.Sprintf("iteration-%03d.log", e.Iteration))
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// ReportPath returns where the run report lives.
func (s *Session) ReportPath() string {
	return filepath.Join(s.Dir, "report.md")
}

// CopyReport copies the finished report to dst for --output.
func (s *Session) CopyReport(dst string) error {
	data, err := os.ReadFile(s.ReportPath())
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("copying report: %w", err)
	}
	return nil
}

// Close flushes and closes the session's log files.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	if err := s.commands.Close(); err != nil {
		firstErr = err
	}
	if err := s.output.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
