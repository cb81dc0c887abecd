package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/pr-checks/cmd"
	"github.com/google/go-github/v57/github"
)

// CommitStatus is a status to publish against a commit
type CommitStatus struct {
	State       cmd.StatusState
	Context     string
	Description string
	TargetURL   string
}

// CreateCommitStatus publishes a commit status on the given SHA
func (c *Client) CreateCommitStatus(ctx context.Context, sha string, status CommitStatus) error {
	repoStatus := &github.RepoStatus{
		State:       github.String(string(status.State)),
		Context:     github.String(status.Context),
		Description: github.String(status.Description),
	}
	if status.TargetURL != "" {
		repoStatus.TargetURL = github.String(status.TargetURL)
	}

	slog.Debug("GitHub API: Creating commit status", "org", c.org, "repo", c.repo, "sha", sha, "state", status.State, "context", status.Context)
	if _, _, err := c.client.Repositories.CreateStatus(ctx, c.org, c.repo, sha, repoStatus); err != nil {
		return fmt.Errorf("%w: failed to create status on %s: %w", cmd.ErrStatusPublish, sha, err)
	}
	return nil
}
