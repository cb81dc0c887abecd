package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alan/pr-checks/cmd"
	"github.com/google/go-github/v57/github"
)

// GetPR fetches details for a specific PR by number
func (c *Client) GetPR(ctx context.Context, number int) (*PR, error) {
	slog.Debug("GitHub API: Getting PR", "org", c.org, "repo", c.repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, c.org, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	return convertPR(pr), nil
}

func convertPR(pr *github.PullRequest) *PR {
	return &PR{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		URL:            pr.GetHTMLURL(),
		HeadSHA:        pr.GetHead().GetSHA(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		BaseRepo:       pr.GetBase().GetRepo().GetFullName(),
		HeadRepo:       pr.GetHead().GetRepo().GetFullName(),
	}
}

// ListPRCommits fetches every commit of a PR together with its author's GitHub identity.
// Profile emails are looked up once per distinct login.
func (c *Client) ListPRCommits(ctx context.Context, number int) ([]Commit, error) {
	commits, err := paginatedList(func(page int) ([]*github.RepositoryCommit, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing PR commits", "org", c.org, "repo", c.repo, "pr", number, "page", page)
		return c.client.PullRequests.ListCommits(ctx, c.org, c.repo, number, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for PR #%d: %w", number, err)
	}

	emails := make(map[string]*string)
	var result []Commit
	for _, commit := range commits {
		login := commit.GetAuthor().GetLogin()

		email, seen := emails[strings.ToLower(login)]
		if !seen && login != "" {
			email, err = c.getUserEmail(ctx, login)
			if err != nil {
				return nil, err
			}
			emails[strings.ToLower(login)] = email
		}

		result = append(result, Commit{
			SHA:         commit.GetSHA(),
			AuthorLogin: login,
			AuthorEmail: email,
		})
	}

	return result, nil
}

// getUserEmail returns the public profile email of a user, nil when hidden
func (c *Client) getUserEmail(ctx context.Context, login string) (*string, error) {
	slog.Debug("GitHub API: Getting user", "login", login)
	user, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", login, err)
	}
	if user.GetEmail() == "" {
		return nil, nil
	}
	return user.Email, nil
}

// WaitForMergeCommitSHA polls the PR until GitHub reports a merge commit SHA.
// It gives up with cmd.ErrPollTimeout after the given number of attempts.
func (c *Client) WaitForMergeCommitSHA(ctx context.Context, number, attempts int, interval time.Duration) (string, error) {
	for attempt := 1; attempt <= attempts; attempt++ {
		pr, err := c.GetPR(ctx, number)
		if err != nil {
			return "", err
		}
		if pr.MergeCommitSHA != "" {
			slog.Debug("Merge commit available", "pr", number, "sha", pr.MergeCommitSHA, "attempt", attempt)
			return pr.MergeCommitSHA, nil
		}

		if attempt == attempts {
			break
		}

		slog.Info("Merge commit not available yet, waiting", "pr", number, "attempt", attempt, "max_attempts", attempts, "interval", interval)
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return "", fmt.Errorf("%w: PR #%d after %d attempts", cmd.ErrPollTimeout, number, attempts)
}
