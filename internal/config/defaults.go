package config

// DefaultConfig returns the default configuration. Partial config files are
// unmarshaled on top of this, so missing sections keep their defaults.
func DefaultConfig() *Config {
	return &Config{
		Trello: TrelloConfig{
			AliasIDs: map[string]TrelloAlias{},
		},
		Jira: JiraConfig{
			BaseURL:        "https://yourdomain.atlassian.net",
			ShowDoneIssues: false,
			CustomStatusOrder: map[string]int{
				"To Do":       1,
				"In Progress": 2,
				"Testing":     3,
				"Done":        4,
			},
			AliasIDs: map[string]string{},
		},
		Confluence: ConfluenceConfig{},
		CLI: CLIConfig{
			Verbose:      false,
			DefaultTool:  "trello",
			OutputFormat: "table",
		},
	}
}

// WriteDefault writes the default configuration file, creating the
// configuration directory if needed.
func WriteDefault() error {
	return Save(DefaultConfig())
}
