// Package agent drives the plan/validate/execute/record loop for one
// task until the planner declares completion or the iteration budget
// runs out.
package agent

import (
	"context"
	"time"

	"github.com/vinayprograms/taskagent/internal/console"
	"github.com/vinayprograms/taskagent/internal/executor"
	"github.com/vinayprograms/taskagent/internal/history"
	"github.com/vinayprograms/taskagent/internal/logging"
	"github.com/vinayprograms/taskagent/internal/planner"
	"github.com/vinayprograms/taskagent/internal/session"
)

// Params wires an Agent together.
type Params struct {
	Planner        *planner.Planner
	Executor       *executor.Executor
	Session        *session.Session
	Console        *console.Console
	Log            *logging.Logger
	MaxIterations  int
	CommandTimeout time.Duration
}

// Result is the terminal state of a run.
type Result struct {
	Status      string // session.StatusComplete or session.StatusAborted
	Summary     string
	FinalOutput string
	Iterations  int
	ReportPath  string
	Report      string // rendered markdown
	ExitCode    int
}

// Agent runs one task to completion.
type Agent struct {
	planner  *planner.Planner
	executor *executor.Executor
	sess     *session.Session
	console  *console.Console
	log      *logging.Logger

	maxIterations  int
	commandTimeout time.Duration
}

// New assembles an Agent from its parts.
func New(p Params) *Agent {
	return &Agent{
		planner:        p.Planner,
		executor:       p.Executor,
		sess:           p.Session,
		console:        p.Console,
		log:            p.Log.WithComponent("agent"),
		maxIterations:  p.MaxIterations,
		commandTimeout: p.CommandTimeout,
	}
}

// Run executes the loop. The only error it returns is a failed request
// to the generation service; every command-level failure is recorded
// in history and the loop continues.
func (a *Agent) Run(ctx context.Context, task string) (*Result, error) {
	envFacts := gatherEnvFacts(ctx)
	hist := history.NewLog()

	ctx, runSpan := a.startRunSpan(ctx, task)
	a.console.Task(task)
	a.log.Info("run started", map[string]interface{}{
		"session":        a.sess.ID,
		"max_iterations": a.maxIterations,
		"env":            envFacts,
	})

	var lastOutcome executor.Outcome
	for i := 1; i <= a.maxIterations; i++ {
		a.console.Iteration(i, a.maxIterations)
		iterCtx, iterSpan := a.startIterationSpan(ctx, i)

		decision, err := a.planner.RequestPlan(iterCtx, task, envFacts, hist)
		if err != nil {
			a.endIterationSpan(iterSpan, "error", err)
			a.endRunSpan(runSpan, session.StatusFailed, err)
			a.log.Error("plan request failed", map[string]interface{}{"error": err.Error()})
			return nil, err
		}

		switch decision.Kind {
		case planner.DecisionComplete:
			a.endIterationSpan(iterSpan, "complete", nil)
			a.endRunSpan(runSpan, session.StatusComplete, nil)
			return a.finish(decision, i, hist)

		case planner.DecisionUnparseable:
			outcome := executor.Skipped("reply was not parseable")
			a.log.Warn("unparseable plan", map[string]interface{}{"iteration": i})
			a.record(hist, history.Entry{Iteration: i, Outcome: outcome})
			a.console.Outcome(outcome)
			lastOutcome = outcome
			a.endIterationSpan(iterSpan, string(outcome.Kind), nil)

		case planner.DecisionContinue:
			a.console.Command(decision.Command, decision.RequiresSudo)
			a.console.Explanation(decision.Explanation)
			if err := a.sess.RecordCommand(i, decision.Command, decision.RequiresSudo); err != nil {
				a.log.Warn("recording command failed", map[string]interface{}{"error": err.Error()})
			}

			outcome := a.executor.Execute(iterCtx, decision.Command, decision.RequiresSudo, a.commandTimeout)
			a.record(hist, history.Entry{
				Iteration:    i,
				Command:      decision.Command,
				RequiresSudo: decision.RequiresSudo,
				Explanation:  decision.Explanation,
				Outcome:      outcome,
			})
			a.console.Outcome(outcome)
			lastOutcome = outcome
			a.endIterationSpan(iterSpan, string(outcome.Kind), nil)
		}
	}

	a.endRunSpan(runSpan, session.StatusAborted, nil)
	return a.abort(hist, lastOutcome)
}

// record appends to history and writes the iteration artifact. The two
// stores never disagree on order because this is the loop's only
// writer.
func (a *Agent) record(hist *history.Log, e history.Entry) {
	hist.Append(e)
	if err := a.sess.RecordIteration(e); err != nil {
		a.log.Warn("recording iteration failed", map[string]interface{}{"error": err.Error()})
	}
}

func (a *Agent) finish(d planner.Decision, iterations int, hist *history.Log) (*Result, error) {
	a.console.Completion(d.Summary, d.FinalOutput)
	path, md, err := a.sess.WriteReport(session.Report{
		Status:      session.StatusComplete,
		Summary:     d.Summary,
		FinalOutput: d.FinalOutput,
		Iterations:  iterations,
		Entries:     hist.Entries(),
	})
	if err != nil {
		a.log.Error("report writing failed", map[string]interface{}{"error": err.Error()})
	}
	a.log.Info("run complete", map[string]interface{}{"iterations": iterations})
	return &Result{
		Status:      session.StatusComplete,
		Summary:     d.Summary,
		FinalOutput: d.FinalOutput,
		Iterations:  iterations,
		ReportPath:  path,
		Report:      md,
		ExitCode:    0,
	}, nil
}

func (a *Agent) abort(hist *history.Log, lastOutcome executor.Outcome) (*Result, error) {
	a.console.Aborted(a.maxIterations)
	path, md, err := a.sess.WriteReport(session.Report{
		Status:     session.StatusAborted,
		Iterations: a.maxIterations,
		Entries:    hist.Entries(),
	})
	if err != nil {
		a.log.Error("report writing failed", map[string]interface{}{"error": err.Error()})
	}
	a.log.Warn("iteration budget exhausted", map[string]interface{}{
		"iterations": a.maxIterations,
	})

	exitCode := 1
	if lastOutcome.Kind != "" {
		exitCode = lastOutcome.ExitStatus()
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return &Result{
		Status:     session.StatusAborted,
		Iterations: a.maxIterations,
		ReportPath: path,
		Report:     md,
		ExitCode:   exitCode,
	}, nil
}
