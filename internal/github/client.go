// Package github fetches public repositories for a profile's GitHub account.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devlink/internal/observability"
)

// ErrNotFound is returned for any non-200 response from GitHub. Callers
// surface it the same way as an unknown username.
var ErrNotFound = errors.New("github profile not found")

// Repo is the subset of GitHub's repository payload exposed to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Language    string `json:"language"`
}

// Config holds client settings. Token is optional; an empty token keeps
// requests unauthenticated at GitHub's lower rate limit.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client calls the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a GitHub API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListRepos fetches the five oldest public repos for a username. Any non-200
// response, including rate limiting, yields ErrNotFound so the caller shows
// the same "no profile" answer in every failure mode.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	u := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	observability.GithubRequestLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("calling github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding github response: %w", err)
	}
	return repos, nil
}
