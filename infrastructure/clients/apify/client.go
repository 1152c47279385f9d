package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.apify.com/v2"

// Terminal actor-run states as reported by the Apify API.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusAborted   = "ABORTED"
	StatusTimedOut  = "TIMED-OUT"
)

// RunStatus is one observation of an asynchronous actor run.
type RunStatus struct {
	Status    string
	DatasetID string
}

// Terminal reports whether the run has finished, successfully or not.
func (s RunStatus) Terminal() bool {
	switch s.Status {
	case StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut:
		return true
	}
	return false
}

// Client is a thin wrapper over the Apify actor-run REST API: start a run,
// poll its status, fetch the result dataset.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("apify: token is not set")
	}
	return &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// StartRun submits an actor run and returns its run ID.
func (c *Client) StartRun(ctx context.Context, actorID string, input map[string]interface{}) (string, error) {
	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, actorID, c.token)
	body, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("apify: start run: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("apify: start run: no run id in response")
	}
	return result.Data.ID, nil
}

// GetRunStatus fetches the current state of a run.
func (c *Client) GetRunStatus(ctx context.Context, runID string) (RunStatus, error) {
	url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, runID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RunStatus{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return RunStatus{}, err
	}
	defer resp.Body.Close()

	var status struct {
		Data struct {
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return RunStatus{}, err
	}
	return RunStatus{Status: status.Data.Status, DatasetID: status.Data.DefaultDatasetID}, nil
}

// GetDatasetItems fetches the items of a result dataset. Datasets may lag
// briefly behind run completion, so an empty slice is not an error here;
// the caller decides how long to keep retrying.
func (c *Client) GetDatasetItems(ctx context.Context, datasetID string) ([]map[string]interface{}, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s", c.baseURL, datasetID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apify: dataset items: status %d", resp.StatusCode)
	}
	var items []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
