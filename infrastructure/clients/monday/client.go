package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.monday.com/v2"

// Client is a minimal monday.com GraphQL API client covering the
// calls the dashboard needs: token verification, workspace/board
// discovery and column value updates.
type Client struct {
	token  string
	apiURL string
	http   *http.Client
}

func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("monday: api token is not set")
	}
	return &Client{
		token:  token,
		apiURL: defaultAPIURL,
		http:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// WithAPIURL overrides the endpoint, used by tests.
func (c *Client) WithAPIURL(u string) *Client {
	c.apiURL = u
	return c
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

func (c *Client) do(ctx context.Context, q string, vars map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(graphQLRequest{Query: q, Variables: vars})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("monday: status %d: %s", resp.StatusCode, string(body))
	}

	var gql graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gql); err != nil {
		return fmt.Errorf("monday: invalid json response: %w", err)
	}
	if len(gql.Errors) > 0 {
		return fmt.Errorf("monday: %s", gql.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(gql.Data, out); err != nil {
			return fmt.Errorf("monday: decode data: %w", err)
		}
	}
	return nil
}

// Me identifies the token owner. Used to verify a token before storing it.
type Me struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) VerifyToken(ctx context.Context) (Me, error) {
	var data struct {
		Me Me `json:"me"`
	}
	if err := c.do(ctx, `query { me { id name } }`, nil, &data); err != nil {
		return Me{}, err
	}
	if data.Me.ID == "" {
		return Me{}, fmt.Errorf("monday: token did not resolve to a user")
	}
	return data.Me, nil
}

type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var data struct {
		Workspaces []Workspace `json:"workspaces"`
	}
	if err := c.do(ctx, `query { workspaces (limit: 100) { id name } }`, nil, &data); err != nil {
		return nil, err
	}
	return data.Workspaces, nil
}

type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) ListBoards(ctx context.Context, workspaceID string) ([]Board, error) {
	var data struct {
		Boards []Board `json:"boards"`
	}
	q := `query ($ws: [ID!]) { boards (workspace_ids: $ws, limit: 100) { id name } }`
	if err := c.do(ctx, q, map[string]interface{}{"ws": []string{workspaceID}}, &data); err != nil {
		return nil, err
	}
	return data.Boards, nil
}

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

func (c *Client) ListColumns(ctx context.Context, boardID string) ([]Column, error) {
	var data struct {
		Boards []struct {
			Columns []Column `json:"columns"`
		} `json:"boards"`
	}
	q := `query ($ids: [ID!]) { boards (ids: $ids) { columns { id title type } } }`
	if err := c.do(ctx, q, map[string]interface{}{"ids": []string{boardID}}, &data); err != nil {
		return nil, err
	}
	if len(data.Boards) == 0 {
		return nil, fmt.Errorf("monday: board %s not found", boardID)
	}
	return data.Boards[0].Columns, nil
}

// CreateItem adds an item to a board and returns the new item ID.
func (c *Client) CreateItem(ctx context.Context, boardID, itemName string, columnValues map[string]interface{}) (string, error) {
	values, err := json.Marshal(columnValues)
	if err != nil {
		return "", err
	}
	var data struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	q := `mutation ($board: ID!, $name: String!, $values: JSON) {
		create_item (board_id: $board, item_name: $name, column_values: $values) { id }
	}`
	vars := map[string]interface{}{
		"board":  boardID,
		"name":   itemName,
		"values": string(values),
	}
	if err := c.do(ctx, q, vars, &data); err != nil {
		return "", err
	}
	return data.CreateItem.ID, nil
}

// UpdateColumnValues writes multiple column values on an existing item.
func (c *Client) UpdateColumnValues(ctx context.Context, boardID, itemID string, columnValues map[string]interface{}) error {
	values, err := json.Marshal(columnValues)
	if err != nil {
		return err
	}
	q := `mutation ($board: ID!, $item: ID!, $values: JSON!) {
		change_multiple_column_values (board_id: $board, item_id: $item, column_values: $values) { id }
	}`
	vars := map[string]interface{}{
		"board":  boardID,
		"item":   itemID,
		"values": string(values),
	}
	return c.do(ctx, q, vars, nil)
}
