package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/pr-checks/cmd"
	"github.com/google/go-github/v57/github"
)

// ListLabels fetches the names of all labels in the repository registry
func (c *Client) ListLabels(ctx context.Context) ([]string, error) {
	labels, err := paginatedList(func(page int) ([]*github.Label, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing repository labels", "org", c.org, "repo", c.repo, "page", page)
		return c.client.Issues.ListLabels(ctx, c.org, c.repo, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	return labelNames(labels), nil
}

// ListIssueLabels fetches the names of the labels attached to a PR
func (c *Client) ListIssueLabels(ctx context.Context, number int) ([]string, error) {
	labels, err := paginatedList(func(page int) ([]*github.Label, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing PR labels", "org", c.org, "repo", c.repo, "pr", number, "page", page)
		return c.client.Issues.ListLabelsByIssue(ctx, c.org, c.repo, number, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list labels for PR #%d: %w", number, err)
	}

	return labelNames(labels), nil
}

// CreateLabel adds a label to the repository registry
func (c *Client) CreateLabel(ctx context.Context, spec cmd.LabelSpec) error {
	label := &github.Label{
		Name:  github.String(spec.Name),
		Color: github.String(spec.Color),
	}
	if spec.Description != "" {
		label.Description = github.String(spec.Description)
	}

	slog.Debug("GitHub API: Creating label", "org", c.org, "repo", c.repo, "label", spec.Name, "color", spec.Color)
	if _, _, err := c.client.Issues.CreateLabel(ctx, c.org, c.repo, label); err != nil {
		return fmt.Errorf("%w: failed to create label %q: %w", cmd.ErrLabelMutation, spec.Name, err)
	}
	return nil
}

// AddLabel attaches an existing repository label to a PR
func (c *Client) AddLabel(ctx context.Context, number int, name string) error {
	slog.Debug("GitHub API: Adding label", "org", c.org, "repo", c.repo, "pr", number, "label", name)
	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, c.org, c.repo, number, []string{name}); err != nil {
		return fmt.Errorf("%w: failed to add label %q to PR #%d: %w", cmd.ErrLabelMutation, name, number, err)
	}
	return nil
}

// RemoveLabel detaches a label from a PR
func (c *Client) RemoveLabel(ctx context.Context, number int, name string) error {
	slog.Debug("GitHub API: Removing label", "org", c.org, "repo", c.repo, "pr", number, "label", name)
	if _, err := c.client.Issues.RemoveLabelForIssue(ctx, c.org, c.repo, number, name); err != nil {
		return fmt.Errorf("%w: failed to remove label %q from PR #%d: %w", cmd.ErrLabelMutation, name, number, err)
	}
	return nil
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.GetName())
	}
	return names
}
