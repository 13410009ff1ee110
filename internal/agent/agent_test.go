package agent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vinayprograms/taskagent/internal/console"
	"github.com/vinayprograms/taskagent/internal/executor"
	"github.com/vinayprograms/taskagent/internal/llm"
	"github.com/vinayprograms/taskagent/internal/logging"
	"github.com/vinayprograms/taskagent/internal/planner"
	"github.com/vinayprograms/taskagent/internal/session"
)

const completeReply = "TASK_COMPLETE\n" +
	`{"summary": "done", "final_output": "all good"}`

func continueReply(command string) string {
	return `{"requires_sudo": false, "command": "` + command + `", "explanation": "next step"}`
}

func newTestAgent(t *testing.T, client llm.Client, confirm executor.ConfirmFunc, maxIterations int) (*Agent, *session.Session) {
	t.Helper()
	log := logging.New()
	log.SetOutput(io.Discard)

	sess, err := session.New(t.TempDir(), "test task")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	t.Cleanup(func() { sess.Close() })

	var out bytes.Buffer
	a := New(Params{
		Planner:        planner.New(client, log),
		Executor:       executor.New(log, confirm, false),
		Session:        sess,
		Console:        console.New(&out, nil),
		Log:            log,
		MaxIterations:  maxIterations,
		CommandTimeout: 5 * time.Second,
	})
	return a, sess
}

func TestRun_CompletesOnFirstIteration(t *testing.T) {
	mock := llm.NewMock()
	mock.SetResponse(completeReply)
	a, sess := newTestAgent(t, mock, nil, 5)

	res, err := a.Run(context.Background(), "do nothing")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != session.StatusComplete {
		t.Fatalf("Status = %q, want complete", res.Status)
	}
	if res.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", res.Iterations)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, completion must stop the loop", mock.CallCount())
	}

	report, err := os.ReadFile(sess.ReportPath())
	if err != nil {
		t.Fatalf("report missing: %v", err)
	}
	if !strings.Contains(string(report), "all good") {
		t.Errorf("report missing final output:\n%s", report)
	}
}

func TestRun_ExecutesThenCompletes(t *testing.T) {
	mock := llm.NewMock()
	mock.SetResponses(continueReply("echo hello"), completeReply)
	a, sess := newTestAgent(t, mock, nil, 5)

	res, err := a.Run(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != session.StatusComplete || res.Iterations != 2 {
		t.Fatalf("Status = %q Iterations = %d, want complete after 2", res.Status, res.Iterations)
	}

	// The second prompt must carry the first command and its output.
	prompt := mock.LastRequest().Prompt
	if !strings.Contains(prompt, "Command: echo hello") {
		t.Errorf("history missing from prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "hello") {
		t.Errorf("command output missing from prompt:\n%s", prompt)
	}

	commands, err := os.ReadFile(filepath.Join(sess.Dir, "commands.log"))
	if err != nil {
		t.Fatalf("commands.log missing: %v", err)
	}
	if !strings.Contains(string(commands), "echo hello") {
		t.Errorf("issued command not recorded:\n%s", commands)
	}
	if _, err := os.Stat(filepath.Join(sess.Dir, "iteration-001.log")); err != nil {
		t.Errorf("iteration artifact missing: %v", err)
	}
}

func TestRun_UnparseableReplySkipsIteration(t *testing.T) {
	mock := llm.NewMock()
	mock.SetResponses("I would suggest checking the logs.", completeReply)
	a, _ := newTestAgent(t, mock, nil, 5)

	res, err := a.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != session.StatusComplete || res.Iterations != 2 {
		t.Fatalf("Status = %q Iterations = %d, want recovery then completion", res.Status, res.Iterations)
	}

	// The skip must be visible to the next request.
	prompt := mock.LastRequest().Prompt
	if !strings.Contains(prompt, "skipped") {
		t.Errorf("diagnostic entry missing from prompt:\n%s", prompt)
	}
}

func TestRun_BudgetExhaustionAborts(t *testing.T) {
	mock := llm.NewMock()
	mock.SetResponse(continueReply("true"))
	a, sess := newTestAgent(t, mock, nil, 3)

	res, err := a.Run(context.Background(), "never finishes")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != session.StatusAborted {
		t.Fatalf("Status = %q, want aborted", res.Status)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want exactly the budget", mock.CallCount())
	}
	if res.ExitCode == 0 {
		t.Error("an aborted run must exit non-zero")
	}

	report, err := os.ReadFile(sess.ReportPath())
	if err != nil {
		t.Fatalf("a partial report must still be written: %v", err)
	}
	if !strings.Contains(string(report), "Incomplete") {
		t.Errorf("partial report must be marked incomplete:\n%s", report)
	}
	if !strings.Contains(string(report), "`true`") {
		t.Errorf("partial report must list issued commands:\n%s", report)
	}
}

func TestRun_DeclinedSudoCancelsOnlyThatIteration(t *testing.T) {
	mock := llm.NewMock()
	mock.SetResponses(
		`{"requires_sudo": true, "command": "cat /etc/shadow", "explanation": "inspect"}`,
		completeReply,
	)
	decline := func(string) bool { return false }
	a, _ := newTestAgent(t, mock, decline, 5)

	res, err := a.Run(context.Background(), "poke around")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != session.StatusComplete {
		t.Fatalf("a declined prompt must not end the run, got %q", res.Status)
	}

	prompt := mock.LastRequest().Prompt
	if !strings.Contains(prompt, "cancelled by user") {
		t.Errorf("cancellation missing from history:\n%s", prompt)
	}
}

func TestRun_ServiceErrorIsFatal(t *testing.T) {
	mock := llm.NewMock()
	mock.SetError(errors.New("connection refused"))
	a, _ := newTestAgent(t, mock, nil, 5)

	_, err := a.Run(context.Background(), "anything")
	if err == nil {
		t.Fatal("a service error must abort the run with an error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error should preserve the cause: %v", err)
	}
}
