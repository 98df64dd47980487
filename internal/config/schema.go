package config

// Config represents the full atlasman configuration, persisted as JSON at
// ~/.config/atlas-man/config.json.
type Config struct {
	Trello     TrelloConfig     `json:"trello" yaml:"trello" mapstructure:"trello"`
	Jira       JiraConfig       `json:"jira" yaml:"jira" mapstructure:"jira"`
	Confluence ConfluenceConfig `json:"confluence" yaml:"confluence" mapstructure:"confluence"`
	CLI        CLIConfig        `json:"cli" yaml:"cli" mapstructure:"cli"`
}

// TrelloAlias maps a user-defined short name to remote Trello IDs.
type TrelloAlias struct {
	BoardID string `json:"board_id" yaml:"board_id" mapstructure:"board_id"`
	ListID  string `json:"list_id,omitempty" yaml:"list_id" mapstructure:"list_id"`
}

// TrelloConfig holds Trello credentials and defaults.
type TrelloConfig struct {
	APIKey       string                 `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	APIToken     string                 `json:"api_token" yaml:"api_token" mapstructure:"api_token"`
	DefaultBoard string                 `json:"default_board" yaml:"default_board" mapstructure:"default_board"`
	AliasIDs     map[string]TrelloAlias `json:"alias_ids" yaml:"alias_ids" mapstructure:"alias_ids"`
}

// JiraConfig holds Jira credentials and defaults.
type JiraConfig struct {
	BaseURL           string            `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Username          string            `json:"username" yaml:"username" mapstructure:"username"`
	APIToken          string            `json:"api_token" yaml:"api_token" mapstructure:"api_token"`
	DefaultProjectKey string            `json:"default_project_key" yaml:"default_project_key" mapstructure:"default_project_key"`
	ShowDoneIssues    bool              `json:"show_done_issues" yaml:"show_done_issues" mapstructure:"show_done_issues"`
	CustomStatusOrder map[string]int    `json:"custom_status_order" yaml:"custom_status_order" mapstructure:"custom_status_order"`
	AliasIDs          map[string]string `json:"alias_ids" yaml:"alias_ids" mapstructure:"alias_ids"`
}

// ConfluenceConfig holds Confluence settings. Confluence shares the Jira
// credentials; only the base URL may differ on server installs.
type ConfluenceConfig struct {
	BaseURL         string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	DefaultSpaceKey string `json:"default_space_key" yaml:"default_space_key" mapstructure:"default_space_key"`
}

// CLIConfig holds terminal-facing preferences.
type CLIConfig struct {
	Verbose      bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	DefaultTool  string `json:"default_tool" yaml:"default_tool" mapstructure:"default_tool"`
	OutputFormat string `json:"output_format" yaml:"output_format" mapstructure:"output_format"`
}

// Redacted returns a copy of the configuration with credential values masked,
// suitable for printing.
func (c *Config) Redacted() *Config {
	out := *c
	out.Trello.APIKey = mask(c.Trello.APIKey)
	out.Trello.APIToken = mask(c.Trello.APIToken)
	out.Jira.APIToken = mask(c.Jira.APIToken)
	return &out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "<redacted>"
}
