package fbscraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
)

const (
	defaultAPIHost = "facebook-scraper3.p.rapidapi.com"
)

// ErrRateLimited is returned when the provider answers 429; callers may retry
// after the subscription window resets.
var ErrRateLimited = errors.New("fbscraper: rate limited")

// PostAuthor is the author block of a scraped post.
type PostAuthor struct {
	Name string `json:"name"`
}

// PostResults is the metrics payload for one Facebook post or reel.
// Counts may be absent entirely when the scraper could not see them.
type PostResults struct {
	Description    string     `json:"description"`
	PlayCountText  string     `json:"play_count_text"`
	ReactionsCount *int64     `json:"reactions_count"`
	CommentsCount  *int64     `json:"comments_count"`
	ReshareCount   *int64     `json:"reshare_count"`
	Author         PostAuthor `json:"author"`
	Timestamp      string     `json:"timestamp"`
}

type postResponse struct {
	Results PostResults `json:"results"`
}

type postQuery struct {
	PostID string `url:"post_id"`
}

// Client calls the facebook-scraper3 RapidAPI provider.
type Client struct {
	apiKey  string
	baseURL string
	host    string
	http    *http.Client
}

func NewClient(rapidAPIKey string) (*Client, error) {
	if rapidAPIKey == "" {
		return nil, fmt.Errorf("fbscraper: rapidapi key is not set")
	}
	return &Client{
		apiKey:  rapidAPIKey,
		baseURL: "https://" + defaultAPIHost,
		host:    defaultAPIHost,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// GetPost fetches metrics for the given post/reel ID.
func (c *Client) GetPost(ctx context.Context, postID string) (PostResults, error) {
	q, err := query.Values(postQuery{PostID: postID})
	if err != nil {
		return PostResults{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/post?"+q.Encode(), nil)
	if err != nil {
		return PostResults{}, err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return PostResults{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return PostResults{}, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return PostResults{}, fmt.Errorf("fbscraper: status %d: %s", resp.StatusCode, string(body))
	}

	var out postResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return PostResults{}, fmt.Errorf("fbscraper: invalid json response: %w", err)
	}
	return out.Results, nil
}
