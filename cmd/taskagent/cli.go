// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Run     RunCmd     `cmd:"" default:"withargs" help:"Run a task"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// RunCmd runs one task to completion.
type RunCmd struct {
	Task []string `arg:"" help:"Natural-language task to perform"`

	Output        string `short:"o" help:"Copy the final report to this path"`
	OutputDir     string `help:"Directory for session output (default ~/.local/taskagent/sessions)"`
	Model         string `help:"Model identifier (overrides config)"`
	MaxIterations int    `help:"Iteration budget (overrides config)"`
	Timeout       int    `help:"Per-command timeout in seconds (overrides config)"`
	Verbose       bool   `short:"v" help:"Debug logging and rendered report"`
	ForceRoot     bool   `help:"Run privileged commands without prompting"`
	Config        string `help:"Config file path"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}
