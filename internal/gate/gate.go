// Package gate implements the label gate check: a PR passes when it carries at least one
// allow-listed label, and the verdict is published as a commit status.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alan/pr-checks/cmd"
	"github.com/alan/pr-checks/internal/github"
)

// Platform is the subset of the GitHub client the gate needs
type Platform interface {
	GetPR(ctx context.Context, number int) (*github.PR, error)
	ListIssueLabels(ctx context.Context, number int) ([]string, error)
	WaitForMergeCommitSHA(ctx context.Context, number, attempts int, interval time.Duration) (string, error)
	CreateCommitStatus(ctx context.Context, sha string, status github.CommitStatus) error
}

// Request describes one gate evaluation
type Request struct {
	PRNumber  int
	EventName string
	AllowList cmd.AllowList
}

// Result is what the gate observed and published
type Result struct {
	PR     *github.PR
	Labels []string
	Valid  bool
	SHA    string
	Status github.CommitStatus
}

// Gate evaluates PR labels against an allow list
type Gate struct {
	platform Platform
	status   cmd.StatusConfig
	poll     cmd.PollConfig
}

// New creates a gate publishing statuses as configured
func New(platform Platform, status cmd.StatusConfig, poll cmd.PollConfig) *Gate {
	return &Gate{
		platform: platform,
		status:   status,
		poll:     poll,
	}
}

// CheckForkPolicy rejects fork PRs unless the workflow runs on pull_request_target
func CheckForkPolicy(pr *github.PR, eventName string) error {
	if pr.IsFork() && eventName != cmd.EventPullRequestTarget {
		return fmt.Errorf("%w: head %s, base %s, event %q", cmd.ErrUnsupportedForkTrigger, pr.HeadRepo, pr.BaseRepo, eventName)
	}
	return nil
}

// HasValidLabel reports whether any attached label is in the allow list
func HasValidLabel(attached []string, allow cmd.AllowList) bool {
	for _, name := range attached {
		if allow.Contains(name) {
			return true
		}
	}
	return false
}

// Run evaluates the PR and publishes the verdict. A failing verdict is published and
// then reported as cmd.ErrCheckFailed.
func (g *Gate) Run(ctx context.Context, req Request) (*Result, error) {
	pr, err := g.platform.GetPR(ctx, req.PRNumber)
	if err != nil {
		return nil, err
	}
	if err := CheckForkPolicy(pr, req.EventName); err != nil {
		return nil, err
	}

	labels, err := g.platform.ListIssueLabels(ctx, req.PRNumber)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PR:     pr,
		Labels: labels,
		Valid:  HasValidLabel(labels, req.AllowList),
	}
	slog.Info("Evaluated PR labels", "pr", pr.Number, "labels", labels, "valid", result.Valid)

	sha, err := g.resolveSHA(ctx, pr, req.EventName)
	if err != nil {
		return nil, err
	}
	result.SHA = sha
	result.Status = g.statusFor(pr, result.Valid)

	if err := g.platform.CreateCommitStatus(ctx, sha, result.Status); err != nil {
		return nil, err
	}
	slog.Info("Published commit status", "sha", sha, "state", result.Status.State, "context", result.Status.Context)

	if !result.Valid {
		return result, fmt.Errorf("%w: PR #%d has none of the labels %s", cmd.ErrCheckFailed, pr.Number, req.AllowList)
	}
	return result, nil
}

// resolveSHA picks the commit the status is attached to. Under pull_request_target the
// status goes on the test merge commit, which GitHub computes asynchronously.
func (g *Gate) resolveSHA(ctx context.Context, pr *github.PR, eventName string) (string, error) {
	if eventName != cmd.EventPullRequestTarget {
		return pr.HeadSHA, nil
	}
	if pr.MergeCommitSHA != "" {
		return pr.MergeCommitSHA, nil
	}
	return g.platform.WaitForMergeCommitSHA(ctx, pr.Number, g.poll.Attempts, g.poll.Interval)
}

func (g *Gate) statusFor(pr *github.PR, valid bool) github.CommitStatus {
	status := github.CommitStatus{
		State:       cmd.StatusSuccess,
		Context:     g.status.Context,
		Description: g.status.SuccessDescription,
		TargetURL:   g.status.TargetURL,
	}
	if !valid {
		status.State = cmd.StatusFailure
		status.Description = g.status.FailureDescription
	}
	if status.TargetURL == "" {
		status.TargetURL = pr.URL
	}
	return status
}
