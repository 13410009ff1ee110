package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vinayprograms/taskagent/internal/executor"
	"github.com/vinayprograms/taskagent/internal/history"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(t.TempDir(), "test task")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_CreatesDirectoryAndLogs(t *testing.T) {
	base := t.TempDir()
	s, err := New(base, "list files")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if s.RunID == "" {
		t.Error("RunID should be set")
	}
	if !strings.HasPrefix(s.Dir, base) {
		t.Errorf("Dir = %q, want under %q", s.Dir, base)
	}
	for _, name := range []string{"commands.log", "output.log"} {
		if _, err := os.Stat(filepath.Join(s.Dir, name)); err != nil {
			t.Errorf("%s should exist: %v", name, err)
		}
	}
}

func TestRecordCommand_AppendsInOrder(t *testing.T) {
	s := newTestSession(t)
	if err := s.RecordCommand(1, "ls -la", false); err != nil {
		t.Fatalf("RecordCommand: %v", err)
	}
	if err := s.RecordCommand(2, "systemctl restart nginx", true); err != nil {
		t.Fatalf("RecordCommand: %v", err)
	}
	s.Close()

	data, err := os.ReadFile(filepath.Join(s.Dir, "commands.log"))
	if err != nil {
		t.Fatalf("reading commands.log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "[1] ls -la") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[2] sudo systemctl restart nginx") {
		t.Errorf("second line should mark sudo: %q", lines[1])
	}
}

func TestRecordIteration_WritesArtifactFile(t *testing.T) {
	s := newTestSession(t)
	err := s.RecordIteration(history.Entry{
		Iteration:   3,
		Command:     "df -h",
		Explanation: "check disk usage",
		Outcome:     executor.Success("Filesystem  Size\n"),
	})
	if err != nil {
		t.Fatalf("RecordIteration: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, "iteration-003.log"))
	if err != nil {
		t.Fatalf("artifact file missing: %v", err)
	}
	content := string(data)
	for _, want := range []string{"Command: df -h", "check disk usage", "Result: success", "Filesystem"} {
		if !strings.Contains(content, want) {
			t.Errorf("artifact missing %q:\n%s", want, content)
		}
	}
}

func TestWriteReport_Complete(t *testing.T) {
	s := newTestSession(t)
	path, md, err := s.WriteReport(Report{
		Status:      StatusComplete,
		Summary:     "cleaned the cache",
		FinalOutput: "1.2G freed",
		Iterations:  2,
		Entries: []history.Entry{
			{Iteration: 1, Command: "du -sh /var/cache", Outcome: executor.Success("")},
			{Iteration: 2, Command: "rm -rf /var/cache/apt", Outcome: executor.Success("")},
		},
	})
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if path != s.ReportPath() {
		t.Errorf("path = %q, want %q", path, s.ReportPath())
	}
	for _, want := range []string{"cleaned the cache", "1.2G freed", "`du -sh /var/cache`", s.RunID} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Incomplete") {
		t.Error("a complete run must not be marked incomplete")
	}
}

func TestWriteReport_AbortedListsIssuedCommands(t *testing.T) {
	s := newTestSession(t)
	_, md, err := s.WriteReport(Report{
		Status:     StatusAborted,
		Iterations: 2,
		Entries: []history.Entry{
			{Iteration: 1, Command: "ping -c1 example.com", Outcome: executor.TimedOut("")},
			{Iteration: 2, Outcome: executor.Skipped("reply was not parseable")},
		},
	})
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.Contains(md, "Incomplete") {
		t.Error("aborted report must be marked incomplete")
	}
	if !strings.Contains(md, "ping -c1 example.com") {
		t.Error("aborted report must list every issued command")
	}
}

func TestCopyReport(t *testing.T) {
	s := newTestSession(t)
	if _, _, err := s.WriteReport(Report{Status: StatusComplete, Iterations: 0}); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	dst := filepath.Join(t.TempDir(), "out.md")
	if err := s.CopyReport(dst); err != nil {
		t.Fatalf("CopyReport: %v", err)
	}
	orig, _ := os.ReadFile(s.ReportPath())
	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(orig) != string(copied) {
		t.Error("copied report differs from the original")
	}
}
