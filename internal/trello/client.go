// Package trello is a minimal client for the Trello REST API, covering the
// board, list, and card operations the CLI needs.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/tylerjwoodfin/atlas-man/internal/apierr"
)

const defaultBaseURL = "https://api.trello.com/1"

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsID reports whether s looks like a Trello object ID rather than a name.
func IsID(s string) bool {
	return idPattern.MatchString(s)
}

// Client talks to the Trello REST API. Authentication is the key/token query
// parameter pair Trello issues per application.
type Client struct {
	BaseURL string
	key     string
	token   string
	client  *http.Client
}

// NewClient creates a Trello client with the given API key and token.
func NewClient(key, token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		key:     key,
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Boards fetches all boards of the authenticated member.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	q := url.Values{}
	q.Set("fields", "id,name,closed,shortUrl")

	var boards []Board
	if err := c.do(ctx, http.MethodGet, "/members/me/boards", q, &boards); err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// BoardByName finds an open board by exact name.
func (c *Client) BoardByName(ctx context.Context, name string) (*Board, error) {
	boards, err := c.Boards(ctx)
	if err != nil {
		return nil, err
	}
	for i := range boards {
		if boards[i].Name == name && !boards[i].Closed {
			return &boards[i], nil
		}
	}
	return nil, fmt.Errorf("no board found with the name %q", name)
}

// Lists fetches the open lists of a board.
func (c *Client) Lists(ctx context.Context, boardID string) ([]List, error) {
	q := url.Values{}
	q.Set("fields", "id,name,idBoard,closed")

	var lists []List
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/lists", q, &lists); err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}

// ListByName finds a list on a board by exact name.
func (c *Client) ListByName(ctx context.Context, boardID, name string) (*List, error) {
	lists, err := c.Lists(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].Name == name {
			return &lists[i], nil
		}
	}
	return nil, fmt.Errorf("no list found with the name %q", name)
}

// Cards fetches the cards of a list.
func (c *Client) Cards(ctx context.Context, listID string) ([]Card, error) {
	q := url.Values{}
	q.Set("fields", "id,name,desc,idList,idBoard")

	var cards []Card
	if err := c.do(ctx, http.MethodGet, "/lists/"+url.PathEscape(listID)+"/cards", q, &cards); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// CardByName finds a card on a list by exact name.
func (c *Client) CardByName(ctx context.Context, listID, name string) (*Card, error) {
	cards, err := c.Cards(ctx, listID)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].Name == name {
			return &cards[i], nil
		}
	}
	return nil, fmt.Errorf("no card found with the name %q", name)
}

// CreateBoard creates a board without the default lists.
func (c *Client) CreateBoard(ctx context.Context, name string) (*Board, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("defaultLists", "false")

	var board Board
	if err := c.do(ctx, http.MethodPost, "/boards", q, &board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &board, nil
}

// CreateList creates a list at the bottom of a board.
func (c *Client) CreateList(ctx context.Context, boardID, name string) (*List, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("idBoard", boardID)
	q.Set("pos", "bottom")

	var list List
	if err := c.do(ctx, http.MethodPost, "/lists", q, &list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &list, nil
}

// CreateCard creates a card on a list.
func (c *Client) CreateCard(ctx context.Context, listID, name, desc string) (*Card, error) {
	q := url.Values{}
	q.Set("idList", listID)
	q.Set("name", name)
	if desc != "" {
		q.Set("desc", desc)
	}

	var card Card
	if err := c.do(ctx, http.MethodPost, "/cards", q, &card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &card, nil
}

// DeleteBoard permanently deletes a board.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	if err := c.do(ctx, http.MethodDelete, "/boards/"+url.PathEscape(boardID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// CloseList archives a list. Trello has no list deletion endpoint.
func (c *Client) CloseList(ctx context.Context, listID string) error {
	q := url.Values{}
	q.Set("value", "true")
	if err := c.do(ctx, http.MethodPut, "/lists/"+url.PathEscape(listID)+"/closed", q, nil); err != nil {
		return fmt.Errorf("failed to close list: %w", err)
	}
	return nil
}

// DeleteCard permanently deletes a card.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	if err := c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// do performs a request and decodes the JSON response into out when out is
// non-nil. Non-2xx responses become *apierr.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.key)
	query.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierr.FromResponse("Trello", resp, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
