// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultModel = "claude-sonnet-4-20250514"

// Config represents the taskagent configuration.
type Config struct {
	LLM   LLMConfig   `toml:"llm"`
	Agent AgentConfig `toml:"agent"`
}

// LLMConfig contains generation-service settings.
type LLMConfig struct {
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	MaxTokens int    `toml:"max_tokens"`
}

// AgentConfig contains run settings.
type AgentConfig struct {
	MaxIterations  int    `toml:"max_iterations"`
	CommandTimeout int    `toml:"command_timeout"` // seconds
	OutputDir      string `toml:"output_dir"`
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:     defaultModel,
			MaxTokens: 4096,
		},
		Agent: AgentConfig{
			MaxIterations:  5,
			CommandTimeout: 30,
			OutputDir:      "~/.local/taskagent/sessions",
		},
	}
}

// Default returns a default configuration.
func Default() *Config {
	return New()
}

// LoadFile loads configuration from a TOML file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads taskagent.toml from the current directory when it
// exists, otherwise returns the defaults.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, "taskagent.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// GetAPIKey returns the API key from the configured environment
// variable, defaulting to ANTHROPIC_API_KEY.
func (c *Config) GetAPIKey() string {
	envVar := c.LLM.APIKeyEnv
	if envVar == "" {
		envVar = "ANTHROPIC_API_KEY"
	}
	return os.Getenv(envVar)
}

// ExpandOutputDir resolves a leading ~ in the output directory.
func (c *Config) ExpandOutputDir() (string, error) {
	return expandHome(c.Agent.OutputDir)
}

func expandHome(path string) (string, error) {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
