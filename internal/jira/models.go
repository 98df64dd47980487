package jira

// Project is a Jira project.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// StatusCategory groups statuses into to-do / in-progress / done buckets.
type StatusCategory struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Status is an issue workflow status.
type Status struct {
	Name           string         `json:"name"`
	StatusCategory StatusCategory `json:"statusCategory"`
}

// IssueFields holds the issue fields the CLI displays.
type IssueFields struct {
	Summary string `json:"summary"`
	Status  Status `json:"status"`
}

// Issue is a Jira issue.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// searchResult is a page of the issue search endpoint.
type searchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}
