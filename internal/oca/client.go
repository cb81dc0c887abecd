// Package oca verifies that pull request authors hold a signed contributor agreement.
package oca

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alan/pr-checks/cmd"
)

// Verdict is the agreement status of a single author
type Verdict int

const (
	// VerdictUnknown is used for authors without a login; it never counts as verified
	VerdictUnknown Verdict = iota
	// VerdictVerified means the membership service knows a signed agreement
	VerdictVerified
	// VerdictNotVerified means no signed agreement was found
	VerdictNotVerified
)

// String returns the verdict as shown in logs
func (v Verdict) String() string {
	switch v {
	case VerdictVerified:
		return "verified"
	case VerdictNotVerified:
		return "not-verified"
	default:
		return "unknown"
	}
}

// MemberCheck is the answer of the membership service for one login
type MemberCheck struct {
	Login      string
	Verdict    Verdict
	StatusCode int   // 0 when no request was made
	Warning    error // wraps cmd.ErrUnexpectedVerificationStatus for non 200/404 answers
}

// Client queries the membership-status endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for unexpected-status warnings.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a membership client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckMember asks the service whether login has a signed agreement.
// A blank login is answered locally with VerdictUnknown. Only transport failures are
// returned as errors; they wrap cmd.ErrVerificationTransport.
func (c *Client) CheckMember(ctx context.Context, login string) (MemberCheck, error) {
	check := MemberCheck{Login: login, Verdict: VerdictUnknown}
	if strings.TrimSpace(login) == "" {
		return check, nil
	}

	endpoint := c.baseURL + "/members/status?" + url.Values{"username": {login}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return check, fmt.Errorf("%w: failed to create request: %w", cmd.ErrVerificationTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("OCA API: Checking member status", "login", login)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return check, fmt.Errorf("%w: checking %s: %w", cmd.ErrVerificationTransport, login, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	check.StatusCode = resp.StatusCode
	switch resp.StatusCode {
	case http.StatusOK:
		check.Verdict = VerdictVerified
	case http.StatusNotFound:
		check.Verdict = VerdictNotVerified
	default:
		check.Verdict = VerdictNotVerified
		check.Warning = fmt.Errorf("%w: %d for %s", cmd.ErrUnexpectedVerificationStatus, resp.StatusCode, login)
		c.logger.Warn("Unexpected OCA membership status, treating author as not verified", "login", login, "status", resp.StatusCode)
	}

	return check, nil
}
