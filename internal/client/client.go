// Package client is a thin JSON client for the leaderboard HTTP API. Every
// method takes a context and maps one endpoint; non-2xx responses surface as
// errors carrying the server message when one is present.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/leaderboard"
)

// Client talks to a leaderboard server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client from the API section of the game config.
func New(cfg config.APIClientConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is the {success:false, message} body returned on failures.
type apiError struct {
	Message string `json:"message"`
}

// ActiveUsers fetches the simulated presence counter.
func (c *Client) ActiveUsers(ctx context.Context) (int, error) {
	var out struct {
		ActiveUsers int `json:"activeUsers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/active-users", nil, &out); err != nil {
		return 0, err
	}
	return out.ActiveUsers, nil
}

// NudgeActiveUsers shifts the presence counter by delta and returns the new value.
func (c *Client) NudgeActiveUsers(ctx context.Context, delta int) (int, error) {
	body := map[string]int{"change": delta}
	var out struct {
		ActiveUsers int `json:"activeUsers"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/update-active-users", body, &out); err != nil {
		return 0, err
	}
	return out.ActiveUsers, nil
}

// SubmitScore reports a finished run and returns the username's high score.
func (c *Client) SubmitScore(ctx context.Context, username string, score int) (int, error) {
	body := map[string]any{"username": username, "score": score}
	var out struct {
		HighScore int `json:"highScore"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/submit-score", body, &out); err != nil {
		return 0, err
	}
	return out.HighScore, nil
}

// Leaderboard fetches the top entries, best first.
func (c *Client) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	var out struct {
		Leaderboard []leaderboard.Entry `json:"leaderboard"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out.Leaderboard, nil
}

// CheckUsername reports whether candidate is free to use. current, when
// non-empty, marks a rename so keeping the same name counts as available.
func (c *Client) CheckUsername(ctx context.Context, candidate, current string) (bool, error) {
	body := map[string]string{"username": candidate, "currentUsername": current}
	var out struct {
		Available bool `json:"available"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/check-username", body, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

// UpdateUsername renames a player, carrying their high score over.
func (c *Client) UpdateUsername(ctx context.Context, oldName, newName string) error {
	body := map[string]string{"oldUsername": oldName, "newUsername": newName}
	return c.do(ctx, http.MethodPost, "/api/update-username", body, nil)
}

// Airdrop registers a wallet address and returns the generated username.
func (c *Client) Airdrop(ctx context.Context, wallet string) (string, error) {
	body := map[string]string{"walletAddress": wallet}
	var out struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/airdrop", body, &out); err != nil {
		return "", err
	}
	return out.Username, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s: %w", path, err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("client: build request %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("client: %s %s: %s (status %d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("client: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}
