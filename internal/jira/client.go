// Package jira is a minimal client for the Jira Cloud REST API (v2),
// covering the issue and project operations the CLI needs.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tylerjwoodfin/atlas-man/internal/apierr"
)

const apiPrefix = "/rest/api/2"

// Client talks to the Jira REST API using basic auth with an API token.
type Client struct {
	BaseURL  string
	username string
	token    string
	client   *http.Client
}

// NewClient creates a Jira client for the given site base URL, such as
// https://yourdomain.atlassian.net.
func NewClient(baseURL, username, token string) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		token:    token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Issues fetches all issues of a project, following search pagination.
func (c *Client) Issues(ctx context.Context, projectKey string) ([]Issue, error) {
	var all []Issue
	startAt := 0
	for {
		q := url.Values{}
		q.Set("jql", fmt.Sprintf("project = %q ORDER BY created ASC", projectKey))
		q.Set("fields", "summary,status")
		q.Set("startAt", fmt.Sprintf("%d", startAt))
		q.Set("maxResults", "50")

		var page searchResult
		if err := c.do(ctx, http.MethodGet, "/search", q, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		all = append(all, page.Issues...)

		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			break
		}
	}
	return all, nil
}

// Projects fetches all projects visible to the authenticated user.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/project", nil, nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateIssue creates a Task-type issue in a project and returns its key.
func (c *Client) CreateIssue(ctx context.Context, projectKey, summary string) (*Issue, error) {
	payload := map[string]any{
		"fields": map[string]any{
			"project":   map[string]string{"key": projectKey},
			"summary":   summary,
			"issuetype": map[string]string{"name": "Task"},
		},
	}

	var issue Issue
	if err := c.do(ctx, http.MethodPost, "/issue", nil, payload, &issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return &issue, nil
}

// UpdateIssueSummary replaces the summary of an issue.
func (c *Client) UpdateIssueSummary(ctx context.Context, issueKey, summary string) error {
	payload := map[string]any{
		"fields": map[string]any{"summary": summary},
	}
	if err := c.do(ctx, http.MethodPut, "/issue/"+url.PathEscape(issueKey), nil, payload, nil); err != nil {
		return fmt.Errorf("failed to update issue: %w", err)
	}
	return nil
}

// DeleteIssue deletes an issue by key or ID.
func (c *Client) DeleteIssue(ctx context.Context, issueKey string) error {
	if err := c.do(ctx, http.MethodDelete, "/issue/"+url.PathEscape(issueKey), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}
	return nil
}

// CreateProject creates a software project. Requires admin privileges; a 403
// surfaces as an *apierr.Error.
func (c *Client) CreateProject(ctx context.Context, name, key string) (*Project, error) {
	payload := map[string]any{
		"key":            key,
		"name":           name,
		"projectTypeKey": "software",
	}

	var created struct {
		ID  json.Number `json:"id"`
		Key string      `json:"key"`
	}
	if err := c.do(ctx, http.MethodPost, "/project", nil, payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &Project{ID: created.ID.String(), Key: created.Key, Name: name}, nil
}

// DeleteProject deletes a project by key.
func (c *Client) DeleteProject(ctx context.Context, key string) error {
	if err := c.do(ctx, http.MethodDelete, "/project/"+url.PathEscape(key), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// FilterDone drops issues whose status is in the done category. Issues from
// servers that omit status categories fall back to a name match.
func FilterDone(issues []Issue) []Issue {
	out := issues[:0:0]
	for _, issue := range issues {
		if issue.Fields.Status.StatusCategory.Key == "done" {
			continue
		}
		if issue.Fields.Status.StatusCategory.Key == "" && issue.Fields.Status.Name == "Done" {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// SortByStatusOrder stably sorts issues by the configured rank of their
// status name. Statuses without a configured rank sort last.
func SortByStatusOrder(issues []Issue, order map[string]int) {
	if len(order) == 0 {
		return
	}
	rank := func(issue Issue) int {
		if r, ok := order[issue.Fields.Status.Name]; ok {
			return r
		}
		return int(^uint(0) >> 1)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return rank(issues[i]) < rank(issues[j])
	})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	u := c.BaseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierr.FromResponse("Jira", resp, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
