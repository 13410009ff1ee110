package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Agent.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want 5", cfg.Agent.MaxIterations)
	}
	if cfg.Agent.CommandTimeout != 30 {
		t.Errorf("CommandTimeout = %d, want 30", cfg.Agent.CommandTimeout)
	}
	if cfg.LLM.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Model == "" {
		t.Error("a default model must be set")
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskagent.toml")
	content := `
[llm]
model = "claude-haiku-4"
max_tokens = 1024

[agent]
max_iterations = 10
output_dir = "/tmp/sessions"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.LLM.Model != "claude-haiku-4" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d", cfg.LLM.MaxTokens)
	}
	if cfg.Agent.MaxIterations != 10 {
		t.Errorf("MaxIterations = %d", cfg.Agent.MaxIterations)
	}
	// Untouched settings keep their defaults.
	if cfg.Agent.CommandTimeout != 30 {
		t.Errorf("CommandTimeout = %d, want default 30", cfg.Agent.CommandTimeout)
	}
}

func TestLoadFile_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[llm\nmodel="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("malformed TOML should fail to load")
	}
}

func TestGetAPIKey(t *testing.T) {
	cfg := New()
	cfg.LLM.APIKeyEnv = "TASKAGENT_TEST_KEY"
	t.Setenv("TASKAGENT_TEST_KEY", "sk-test-123")
	if got := cfg.GetAPIKey(); got != "sk-test-123" {
		t.Errorf("GetAPIKey = %q", got)
	}

	cfg.LLM.APIKeyEnv = ""
	t.Setenv("ANTHROPIC_API_KEY", "sk-default-456")
	if got := cfg.GetAPIKey(); got != "sk-default-456" {
		t.Errorf("GetAPIKey with default env = %q", got)
	}
}

func TestExpandOutputDir(t *testing.T) {
	cfg := New()
	dir, err := cfg.ExpandOutputDir()
	if err != nil {
		t.Fatalf("ExpandOutputDir: %v", err)
	}
	if strings.HasPrefix(dir, "~") {
		t.Errorf("tilde not expanded: %q", dir)
	}

	cfg.Agent.OutputDir = "/var/lib/taskagent"
	dir, err = cfg.ExpandOutputDir()
	if err != nil || dir != "/var/lib/taskagent" {
		t.Errorf("absolute path should pass through, got %q, %v", dir, err)
	}
}
