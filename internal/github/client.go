package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client
type Client struct {
	client     *github.Client
	httpClient *http.Client
	org        string
	repo       string
}

// NewClient creates a new GitHub client with token authentication
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client:     github.NewClient(tc),
		httpClient: tc,
	}
}

// WithRepository returns a copy of the client scoped to the given repository
func (c *Client) WithRepository(org, repo string) *Client {
	return &Client{
		client:     c.client,
		httpClient: c.httpClient,
		org:        org,
		repo:       repo,
	}
}

// WithBaseURL returns a copy of the client that talks to a different API root
// (GitHub Enterprise or a test server). The receiver keeps its own base URL.
func (c *Client) WithBaseURL(apiURL string) (*Client, error) {
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}

	slog.Debug("Using custom GitHub API URL", "url", base.String())
	gh := github.NewClient(c.httpClient)
	gh.BaseURL = base
	return &Client{
		client:     gh,
		httpClient: c.httpClient,
		org:        c.org,
		repo:       c.repo,
	}, nil
}

// Org returns the repository owner the client is scoped to
func (c *Client) Org() string {
	return c.org
}

// Repo returns the repository name the client is scoped to
func (c *Client) Repo() string {
	return c.repo
}

// paginatedList walks every page of a go-github list call
func paginatedList[T any](listFunc func(page int) ([]T, *github.Response, error)) ([]T, error) {
	var all []T
	page := 0

	for {
		items, resp, err := listFunc(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
	}

	return all, nil
}
