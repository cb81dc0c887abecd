// Package checklabels implements the check-pr-labels command, which publishes a commit status
// telling whether a pull request carries at least one allow-listed label.
package checklabels

import (
	"context"

	"github.com/alan/pr-checks/cmd"
	"github.com/alan/pr-checks/internal/commands"
	"github.com/alan/pr-checks/internal/gate"
	"github.com/spf13/cobra"
)

// NewCheckLabelsCmd creates and returns the check-pr-labels command
func NewCheckLabelsCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	builder := &commands.CommandBuilder{
		Use:     "check-pr-labels",
		Aliases: []string{"check_pr_labels"},
		Short:   "Require at least one valid label on a PR",
		Long: `Check-pr-labels passes when the pull request carries at least one of the
comma-separated valid labels, and publishes the verdict as a commit status.

PRs from forks are only supported when the workflow is triggered on
"pull_request_target". In that case the status is published on the merge commit,
which is polled for until GitHub has computed it; otherwise it goes on the head commit.`,
		ExampleUsage: []string{
			`pr-checks check-pr-labels "$GITHUB_TOKEN" "ready,approved" ""`,
			`pr-checks check-pr-labels "$GITHUB_TOKEN" '["ready"]' "${{ github.event.number }}"`,
		},
	}

	return builder.BuildCommand(func(cobraCmd *cobra.Command, args []string) error {
		bc := &commands.BaseCommand{
			ConfigFile: globalConfigFile,
			LoadConfig: loadConfig,
		}
		return runCheckLabels(cobraCmd.Context(), bc, args)
	})
}

func runCheckLabels(ctx context.Context, bc *commands.BaseCommand, args []string) error {
	if err := bc.Init(ctx, args); err != nil {
		return err
	}
	check := bc.Check

	g := gate.New(bc.GitHubClient, bc.Config.Status, bc.Config.Poll)
	result, err := g.Run(ctx, gate.Request{
		PRNumber:  check.PRNumber,
		EventName: check.EventName,
		AllowList: check.AllowList,
	})
	if result != nil {
		commands.DisplayGateResult(result, check.AllowList)
	}
	return err
}
