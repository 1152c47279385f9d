package scrapeninja

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	rapidAPIURL  = "https://scrapeninja.p.rapidapi.com/scrape"
	rapidAPIHost = "scrapeninja.p.rapidapi.com"
	directAPIURL = "https://api.scrapeninja.com/v1/scrape"
)

// Client renders a page through the ScrapeNinja hosted browser and returns
// its HTML body. The same request shape is served both through RapidAPI and
// ScrapeNinja's own endpoint; only auth headers differ.
type Client struct {
	apiURL  string
	headers map[string]string
	http    *http.Client
}

// NewRapidAPIClient builds a client for the RapidAPI-hosted endpoint.
func NewRapidAPIClient(rapidAPIKey string) (*Client, error) {
	if rapidAPIKey == "" {
		return nil, fmt.Errorf("scrapeninja: rapidapi key is not set")
	}
	return &Client{
		apiURL: rapidAPIURL,
		headers: map[string]string{
			"x-rapidapi-key":  rapidAPIKey,
			"x-rapidapi-host": rapidAPIHost,
		},
		http: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewDirectClient builds a client for ScrapeNinja's own API.
func NewDirectClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("scrapeninja: api key is not set")
	}
	return &Client{
		apiURL: directAPIURL,
		headers: map[string]string{
			"Authorization": "Bearer " + apiKey,
		},
		http: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// WithAPIURL overrides the endpoint, used by tests.
func (c *Client) WithAPIURL(u string) *Client {
	c.apiURL = u
	return c
}

type scrapeRequest struct {
	URL    string `json:"url"`
	Render bool   `json:"render"`
	Wait   int    `json:"wait"`
}

// Scrape renders the target URL and returns the page HTML.
func (c *Client) Scrape(ctx context.Context, targetURL string) (string, error) {
	payload, err := json.Marshal(scrapeRequest{URL: targetURL, Render: true, Wait: 3000})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("scrapeninja: status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Body == "" {
		return "", fmt.Errorf("scrapeninja: no html body in response")
	}
	return result.Body, nil
}
