package leaderboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
)

// ErrTransport classifies failures talking to a remote leaderboard.
var ErrTransport = errors.New("leaderboard unavailable")

// Client is a Gateway backed by the pinkytype HTTP API.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type bestResponse struct {
	WPM int `json:"wpm"`
}

type takenResponse struct {
	Taken bool `json:"taken"`
}

// Scores implements Gateway.
func (c *Client) Scores(ctx context.Context, category string) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	if _, err := c.get(ctx, "/api/v1/scores/"+url.PathEscape(category), &entries); err != nil {
		return nil, fmt.Errorf("could not fetch scores: %w", err)
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, nil
}

// PersonalBest implements Gateway.
func (c *Client) PersonalBest(ctx context.Context, name, category string) (int, bool, error) {
	var resp bestResponse
	path := "/api/v1/scores/" + url.PathEscape(category) + "/best?name=" + url.QueryEscape(names.Normalize(name))
	found, err := c.get(ctx, path, &resp)
	if err != nil {
		return 0, false, fmt.Errorf("could not fetch personal best: %w", err)
	}
	if !found {
		return 0, false, nil
	}
	return resp.WPM, true, nil
}

// Save implements Gateway.
func (c *Client) Save(ctx context.Context, sub model.ScoreSubmission) error {
	sub.Name = names.Normalize(sub.Name)
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/v1/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to save score: %w: %v", ErrTransport, err)
	}
	defer drain(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("failed to save score: %w", statusError(resp))
	}
	return nil
}

// IsNameTaken implements Gateway.
func (c *Client) IsNameTaken(ctx context.Context, name string) (bool, error) {
	var resp takenResponse
	if _, err := c.get(ctx, "/api/v1/names/"+url.PathEscape(names.Normalize(name)), &resp); err != nil {
		return false, fmt.Errorf("could not verify name: %w", err)
	}
	return resp.Taken, nil
}

// get decodes a JSON response into out. A 404 reports found=false.
func (c *Client) get(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer drain(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode/100 != 2 {
		return false, statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("%w: invalid response: %v", ErrTransport, err)
	}
	return true, nil
}

func statusError(resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("%w: %s", ErrTransport, apiErr.Error)
	}
	return fmt.Errorf("%w: unexpected status %s", ErrTransport, resp.Status)
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	if cerr := body.Close(); cerr != nil {
		// Best-effort body close.
		_ = cerr
	}
}
