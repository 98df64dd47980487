package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrNotFound indicates that no configuration file exists yet.
var ErrNotFound = errors.New("configuration file not found")

// envKeys are the configuration keys that may be overridden through
// ATLASMAN_* environment variables (dots become underscores, upper-cased).
var envKeys = []string{
	"trello.api_key",
	"trello.api_token",
	"jira.base_url",
	"jira.username",
	"jira.api_token",
}

// Path returns the configuration file path. ATLASMAN_CONFIG overrides the
// default location.
func Path() string {
	if p := os.Getenv("ATLASMAN_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "atlas-man", "config.json")
}

// Exists reports whether a configuration file is present.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the configuration file, fills missing sections from defaults,
// and applies environment overrides. A .env file in the working directory is
// loaded first so credentials can live outside the config file.
//
// The file is decoded with encoding/json rather than viper: viper lowercases
// map keys on decode, which would corrupt user-defined alias names and the
// status names in custom_status_order. Viper still serves the ATLASMAN_*
// environment overlay, where keys are fixed.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	path := Path()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w at %s (run 'atlasman config init')", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed configuration at %s: %w", path, err)
	}

	// json.Unmarshal merges into the prefilled default maps; a configured
	// custom_status_order must replace the default ranks, not extend them.
	var overlay Config
	if err := json.Unmarshal(data, &overlay); err == nil && overlay.Jira.CustomStatusOrder != nil {
		cfg.Jira.CustomStatusOrder = overlay.Jira.CustomStatusOrder
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("ATLASMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	if s := v.GetString("trello.api_key"); s != "" {
		cfg.Trello.APIKey = s
	}
	if s := v.GetString("trello.api_token"); s != "" {
		cfg.Trello.APIToken = s
	}
	if s := v.GetString("jira.base_url"); s != "" {
		cfg.Jira.BaseURL = s
	}
	if s := v.GetString("jira.username"); s != "" {
		cfg.Jira.Username = s
	}
	if s := v.GetString("jira.api_token"); s != "" {
		cfg.Jira.APIToken = s
	}
}

// Save writes the configuration as indented JSON. Only alias management and
// 'config init' call this; normal invocations never write the file.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// 0600: the file holds API credentials.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
