// Package executor runs planned shell commands under a wall-clock
// deadline, with explicit confirmation before privilege escalation.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/vinayprograms/taskagent/internal/logging"
	"github.com/vinayprograms/taskagent/internal/validate"
)

// ConfirmFunc asks the user a yes/no question and reports the answer.
// It is injected so tests and non-interactive runs never block on a
// terminal read.
type ConfirmFunc func(prompt string) bool

// shellBuiltins are commands bash provides itself. exec.LookPath would
// report them missing, so existence checking skips them.
var shellBuiltins = map[string]bool{
	"cd": true, "echo": true, "printf": true, "pwd": true,
	"exit": true, "test": true, "[": true, "source": true,
	"export": true, "unset": true, "alias": true, "eval": true,
	"exec": true,
}

// Executor runs one command at a time through bash.
type Executor struct {
	log       *logging.Logger
	confirm   ConfirmFunc
	forceRoot bool
}

// New creates an Executor. confirm may be nil, in which case every
// privileged command is treated as declined unless forceRoot is set.
func New(log *logging.Logger, confirm ConfirmFunc, forceRoot bool) *Executor {
	return &Executor{
		log:       log.WithComponent("executor"),
		confirm:   confirm,
		forceRoot: forceRoot,
	}
}

// Execute validates and runs command, returning a classified Outcome.
// It never returns an error; every way a command can fail is an
// Outcome variant the agent loop records and carries forward.
func (e *Executor) Execute(ctx context.Context, command string, requiresSudo bool, timeout time.Duration) Outcome {
	if err := validate.Command(command); err != nil {
		e.log.Warn("rejected command", map[string]interface{}{"reason": err.Error()})
		return SyntaxInvalid(err.Error())
	}

	if binary, missing := missingBinary(command); missing {
		e.log.Warn("binary not found", map[string]interface{}{"binary": binary})
		return NotFound(binary)
	}

	run := command
	if requiresSudo {
		if !e.forceRoot {
			prompt := fmt.Sprintf("Command requires elevated privileges:\n  sudo %s\nProceed?", command)
			if e.confirm == nil || !e.confirm(prompt) {
				e.log.Info("privileged command declined")
				return Cancelled()
			}
		}
		run = "sudo " + command
	}

	e.log.Debug("executing", map[string]interface{}{
		"command": command,
		"sudo":    requiresSudo,
		"timeout": timeout,
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", run)
	// Run in its own process group so the deadline kill reaches every
	// descendant, not just bash.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if ctx.Err() == context.DeadlineExceeded {
		return TimedOut(output)
	}
	if err == nil {
		return Success(output)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Failure(exitErr.ExitCode(), output)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return NotFound(leadingToken(command))
	}
	return Failure(1, strings.TrimSpace(output+"\n"+err.Error()))
}

// missingBinary reports whether the command's leading binary cannot be
// resolved. Compound commands and builtins are left to bash: anything
// with a control operator, a redirection, or a builtin or variable
// assignment up front skips the check.
func missingBinary(command string) (string, bool) {
	if strings.ContainsAny(command, "|<>") || strings.Contains(command, "&&") {
		return "", false
	}
	token := leadingToken(command)
	if token == "" || strings.Contains(token, "=") || shellBuiltins[token] {
		return "", false
	}
	if _, err := exec.LookPath(token); err != nil {
		return token, true
	}
	return "", false
}

func leadingToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
