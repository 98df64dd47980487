// Package confluence is a minimal client for the Confluence REST API. It
// shares credentials with Jira; Atlassian Cloud serves Confluence under the
// site's /wiki prefix.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tylerjwoodfin/atlas-man/internal/apierr"
)

const apiPrefix = "/wiki/rest/api"

// Client talks to the Confluence REST API using basic auth.
type Client struct {
	BaseURL  string
	username string
	token    string
	client   *http.Client
}

// NewClient creates a Confluence client for the given site base URL.
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

// Pages fetches all pages of a space, following pagination.
func (c *Client) Pages(ctx context.Context, spaceKey string) ([]Page, error) {
	var all []Page
	start := 0
	for {
		q := url.Values{}
		q.Set("spaceKey", spaceKey)
		q.Set("type", "page")
		q.Set("start", fmt.Sprintf("%d", start))
		q.Set("limit", "50")

		var page pageList
		if err := c.do(ctx, http.MethodGet, "/content", q, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list pages: %w", err)
		}
		all = append(all, page.Results...)

		if page.Size < page.Limit || page.Size == 0 {
			break
		}
		start += page.Size
	}
	return all, nil
}

// Page fetches a page with its body and version.
func (c *Client) Page(ctx context.Context, pageID string) (*Page, error) {
	q := url.Values{}
	q.Set("expand", "body.storage,version,space")

	var page Page
	if err := c.do(ctx, http.MethodGet, "/content/"+url.PathEscape(pageID), q, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &page, nil
}

// CreatePage creates a page in a space. Content must be in storage format.
func (c *Client) CreatePage(ctx context.Context, spaceKey, title, content string) (*Page, error) {
	payload := map[string]any{
		"title": title,
		"type":  "page",
		"space": map[string]string{"key": spaceKey},
		"body": map[string]any{
			"storage": map[string]string{
				"value":          content,
				"representation": "storage",
			},
		},
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, "/content", nil, payload, &page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &page, nil
}

// UpdatePage replaces a page body, bumping the version number as Confluence
// requires.
func (c *Client) UpdatePage(ctx context.Context, page *Page, content string) (*Page, error) {
	payload := map[string]any{
		"version": map[string]int{"number": page.Version.Number + 1},
		"title":   page.Title,
		"type":    "page",
		"body": map[string]any{
			"storage": map[string]string{
				"value":          content,
				"representation": "storage",
			},
		},
	}

	var updated Page
	if err := c.do(ctx, http.MethodPut, "/content/"+url.PathEscape(page.ID), nil, payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	return &updated, nil
}

// DeletePage deletes a page by ID.
func (c *Client) DeletePage(ctx context.Context, pageID string) error {
	if err := c.do(ctx, http.MethodDelete, "/content/"+url.PathEscape(pageID), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	return nil
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
		return apierr.FromResponse("Confluence", resp, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
