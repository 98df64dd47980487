package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.CLI.DefaultTool != "trello" {
		t.Errorf("Expected default tool 'trello', got '%s'", cfg.CLI.DefaultTool)
	}
	if cfg.CLI.OutputFormat != "table" {
		t.Errorf("Expected output format 'table', got '%s'", cfg.CLI.OutputFormat)
	}
	if cfg.Jira.ShowDoneIssues {
		t.Error("Expected done issues to be hidden by default")
	}
	if cfg.Jira.CustomStatusOrder["To Do"] != 1 || cfg.Jira.CustomStatusOrder["Done"] != 4 {
		t.Errorf("Unexpected default status order: %v", cfg.Jira.CustomStatusOrder)
	}
	if cfg.Trello.AliasIDs == nil {
		t.Error("Expected alias map to be initialized")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("ATLASMAN_CONFIG", filepath.Join(t.TempDir(), "config.json"))

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
	if !strings.Contains(err.Error(), "config init") {
		t.Errorf("Expected error to point at 'config init', got: %v", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("ATLASMAN_CONFIG", filepath.Join(t.TempDir(), "config.json"))

	cfg := DefaultConfig()
	cfg.Trello.APIKey = "key123"
	cfg.Trello.APIToken = "token456"
	cfg.Trello.DefaultBoard = "Chores"
	cfg.Trello.AliasIDs["Shopping"] = TrelloAlias{BoardID: "5f0c7f6e8a1b2c3d4e5f6071"}
	cfg.Jira.DefaultProjectKey = "OPS"
	cfg.Jira.AliasIDs["Ops"] = "OPS"
	cfg.Jira.CustomStatusOrder = map[string]int{"Blocked": 1, "In Review": 2}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Trello.APIKey != "key123" {
		t.Errorf("Expected api key 'key123', got '%s'", loaded.Trello.APIKey)
	}
	// Alias names and status names keep their case across the round trip.
	if loaded.Trello.AliasIDs["Shopping"].BoardID != "5f0c7f6e8a1b2c3d4e5f6071" {
		t.Errorf("Alias did not survive the round trip: %v", loaded.Trello.AliasIDs)
	}
	if loaded.Jira.AliasIDs["Ops"] != "OPS" {
		t.Errorf("Jira alias did not survive the round trip: %v", loaded.Jira.AliasIDs)
	}
	if loaded.Jira.CustomStatusOrder["In Review"] != 2 {
		t.Errorf("Status order did not survive the round trip: %v", loaded.Jira.CustomStatusOrder)
	}
	// A configured status order replaces the defaults instead of merging.
	if _, ok := loaded.Jira.CustomStatusOrder["To Do"]; ok {
		t.Errorf("Default status ranks leaked into the configured order: %v", loaded.Jira.CustomStatusOrder)
	}
	if len(loaded.Jira.CustomStatusOrder) != 2 {
		t.Errorf("Expected exactly the 2 configured status ranks, got %v", loaded.Jira.CustomStatusOrder)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("ATLASMAN_CONFIG", path)

	partial := `{"trello": {"api_key": "abc", "api_token": "def"}}`
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trello.APIKey != "abc" {
		t.Errorf("Expected api key 'abc', got '%s'", cfg.Trello.APIKey)
	}
	if cfg.CLI.OutputFormat != "table" {
		t.Errorf("Expected default output format to survive a partial file, got '%s'", cfg.CLI.OutputFormat)
	}
	if cfg.Jira.CustomStatusOrder["In Progress"] != 2 {
		t.Errorf("Expected default status order to survive a partial file, got %v", cfg.Jira.CustomStatusOrder)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("ATLASMAN_CONFIG", path)

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error for a malformed config file")
	}
	if !strings.Contains(err.Error(), "malformed configuration") {
		t.Errorf("Expected a malformed-configuration error, got: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("ATLASMAN_CONFIG", path)
	t.Setenv("ATLASMAN_TRELLO_API_KEY", "env-key")

	if err := os.WriteFile(path, []byte(`{"trello": {"api_key": "file-key"}}`), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trello.APIKey != "env-key" {
		t.Errorf("Expected env override 'env-key', got '%s'", cfg.Trello.APIKey)
	}
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Trello.APIKey = "secret"
	cfg.Jira.APIToken = "secret"
	cfg.Jira.Username = "alex@example.com"

	red := cfg.Redacted()
	if red.Trello.APIKey != "<redacted>" {
		t.Errorf("Expected Trello key to be redacted, got '%s'", red.Trello.APIKey)
	}
	if red.Jira.APIToken != "<redacted>" {
		t.Errorf("Expected Jira token to be redacted, got '%s'", red.Jira.APIToken)
	}
	if red.Jira.Username != "alex@example.com" {
		t.Error("Username should not be redacted")
	}
	if cfg.Trello.APIKey != "secret" {
		t.Error("Redacted must not mutate the original config")
	}
	if red.Trello.APIToken != "" {
		t.Errorf("Empty secrets should stay empty, got '%s'", red.Trello.APIToken)
	}
}

func TestWriteDefaultCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	t.Setenv("ATLASMAN_CONFIG", path)

	if err := WriteDefault(); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file not created: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}
}
