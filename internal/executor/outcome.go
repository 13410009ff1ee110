package executor

import "fmt"

// Kind classifies how a command execution ended.
type Kind string

const (
	KindSuccess       Kind = "success"
	KindFailure       Kind = "failure"
	KindNotFound      Kind = "not_found"
	KindTimedOut      Kind = "timed_out"
	KindSyntaxInvalid Kind = "syntax_invalid"
	KindCancelled     Kind = "cancelled"

	// KindSkipped records an iteration whose plan reply could not be
	// parsed. The executor never produces it; the agent loop does.
	KindSkipped Kind = "skipped"
)

// Outcome is the result of attempting to execute one command.
type Outcome struct {
	Kind     Kind
	ExitCode int    // set for KindFailure
	Output   string // combined stdout and stderr
	Binary   string // set for KindNotFound
	Reason   string // set for KindSyntaxInvalid and KindSkipped
}

// Success marks a zero-exit run with its combined output.
func Success(output string) Outcome {
	return Outcome{Kind: KindSuccess, Output: output}
}

// Failure marks a non-zero exit with its code and combined output.
func Failure(exitCode int, output string) Outcome {
	return Outcome{Kind: KindFailure, ExitCode: exitCode, Output: output}
}

// NotFound marks a command whose leading binary does not exist.
func NotFound(binary string) Outcome {
	return Outcome{Kind: KindNotFound, Binary: binary}
}

// TimedOut marks a command killed at its wall-clock deadline. Output
// produced before the kill is preserved.
func TimedOut(output string) Outcome {
	return Outcome{Kind: KindTimedOut, Output: output}
}

// SyntaxInvalid marks a command rejected before execution.
func SyntaxInvalid(reason string) Outcome {
	return Outcome{Kind: KindSyntaxInvalid, Reason: reason}
}

// Cancelled marks a privileged command the user declined to run.
func Cancelled() Outcome {
	return Outcome{Kind: KindCancelled}
}

// Skipped marks an iteration with no executable command.
func Skipped(reason string) Outcome {
	return Outcome{Kind: KindSkipped, Reason: reason}
}

// String renders a one-line status for history and logs.
func (o Outcome) String() string {
	switch o.Kind {
	case KindSuccess:
		return "success"
	case KindFailure:
		return fmt.Sprintf("failed (exit code %d)", o.ExitCode)
	case KindNotFound:
		return fmt.Sprintf("command not found: %s", o.Binary)
	case KindTimedOut:
		return "timed out"
	case KindSyntaxInvalid:
		return fmt.Sprintf("invalid syntax: %s", o.Reason)
	case KindCancelled:
		return "cancelled by user"
	case KindSkipped:
		return fmt.Sprintf("skipped: %s", o.Reason)
	default:
		return string(o.Kind)
	}
}

// ExitStatus maps the outcome onto a process exit code.
func (o Outcome) ExitStatus() int {
	switch o.Kind {
	case KindSuccess:
		return 0
	case KindNotFound:
		return 2
	case KindTimedOut:
		return 3
	case KindSyntaxInvalid:
		return 4
	default:
		return 1
	}
}
