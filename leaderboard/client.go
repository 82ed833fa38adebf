package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lixenwraith/pinball/parameter"
)

// Client talks to a remote leaderboard API
type Client struct {
	base string
	http *http.Client
}

// NewClient targets base, e.g. "https://scores.example.com"
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: parameter.ClientTimeout},
	}
}

type topResponse struct {
	Items []Entry `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Submit(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/score", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrInvalidScore
	}
	return statusError(resp)
}

func (c *Client) Top(ctx context.Context, limit int) ([]Entry, error) {
	u := c.base + "/api/leaderboard?limit=" + url.QueryEscape(strconv.Itoa(ClampLimit(limit)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build top request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var top topResponse
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	items := Normalize(top.Items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// statusError reports the server's error message when it sent one
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var er errorResponse
	if json.Unmarshal(data, &er) == nil && er.Error != "" {
		return fmt.Errorf("leaderboard: HTTP %d: %s", resp.StatusCode, er.Error)
	}
	return fmt.Errorf("leaderboard: HTTP %d", resp.StatusCode)
}
