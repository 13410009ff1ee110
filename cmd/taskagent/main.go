// Package main is the entry point for the taskagent CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/vinayprograms/taskagent/internal/agent"
	"github.com/vinayprograms/taskagent/internal/config"
	"github.com/vinayprograms/taskagent/internal/console"
	"github.com/vinayprograms/taskagent/internal/executor"
	"github.com/vinayprograms/taskagent/internal/llm"
	"github.com/vinayprograms/taskagent/internal/logging"
	"github.com/vinayprograms/taskagent/internal/planner"
	"github.com/vinayprograms/taskagent/internal/session"
	"github.com/vinayprograms/taskagent/internal/telemetry"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func init() {
	// Load .env for API keys and other env vars
	_ = godotenv.Load()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("taskagent"),
		kong.Description("Autonomous agent that completes tasks by running shell commands."),
		kongVars(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// Run executes the task loop.
func (r *RunCmd) Run() error {
	task := strings.TrimSpace(strings.Join(r.Task, " "))
	if task == "" {
		return fmt.Errorf("task must not be empty")
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	apiKey := cfg.GetAPIKey()
	if apiKey == "" {
		envVar := cfg.LLM.APIKeyEnv
		if envVar == "" {
			envVar = "ANTHROPIC_API_KEY"
		}
		return fmt.Errorf("no API key found: set %s or configure api_key_env", envVar)
	}

	log := logging.New()
	if r.Verbose {
		log.SetLevel(logging.LevelDebug)
		telemetry.SetDebug(true)
	}

	outputDir, err := cfg.ExpandOutputDir()
	if err != nil {
		return err
	}
	sess, err := session.New(outputDir, task)
	if err != nil {
		return err
	}
	log = log.WithRunID(sess.RunID)
	log.SetOutput(io.MultiWriter(os.Stderr, sess.OutputWriter()))

	cons := console.New(os.Stdout, os.Stdin)
	client := llm.NewAnthropic(apiKey, cfg.LLM.Model, cfg.LLM.MaxTokens)

	a := agent.New(agent.Params{
		Planner:        planner.New(client, log),
		Executor:       executor.New(log, cons.Confirm, r.ForceRoot),
		Session:        sess,
		Console:        cons,
		Log:            log,
		MaxIterations:  cfg.Agent.MaxIterations,
		CommandTimeout: time.Duration(cfg.Agent.CommandTimeout) * time.Second,
	})

	result, err := a.Run(context.Background(), task)
	if err != nil {
		sess.Close()
		return err
	}

	if r.Output != "" {
		if err := sess.CopyReport(r.Output); err != nil {
			log.Warn("copying report failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if r.Verbose {
		cons.Report(result.Report)
	}
	log.Info("report written", map[string]interface{}{"path": result.ReportPath})

	sess.Close()
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	return nil
}

// loadConfig loads the config file and applies CLI flag overrides.
func (r *RunCmd) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if r.Config != "" {
		cfg, err = config.LoadFile(r.Config)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if r.Model != "" {
		cfg.LLM.Model = r.Model
	}
	if r.MaxIterations > 0 {
		cfg.Agent.MaxIterations = r.MaxIterations
	}
	if r.Timeout > 0 {
		cfg.Agent.CommandTimeout = r.Timeout
	}
	if r.OutputDir != "" {
		cfg.Agent.OutputDir = r.OutputDir
	}
	return cfg, nil
}

// Run prints version information.
func (v *VersionCmd) Run() error {
	fmt.Printf("taskagent version %s (commit: %s, built: %s)\n", version, commit, buildTime)
	return nil
}
