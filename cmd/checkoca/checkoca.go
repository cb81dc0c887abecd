// Package checkoca implements the check-oca command, which verifies that every commit author
// of a pull request has a signed Oracle Contributor Agreement and labels the PR accordingly.
package checkoca

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/pr-checks/cmd"
	"github.com/alan/pr-checks/internal/commands"
	"github.com/alan/pr-checks/internal/labels"
	"github.com/alan/pr-checks/internal/oca"
	"github.com/spf13/cobra"
)

// NewCheckOCACmd creates and returns the check-oca command
func NewCheckOCACmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	builder := &commands.CommandBuilder{
		Use:     "check-oca",
		Aliases: []string{"check_oca"},
		Short:   "Verify that all PR commit authors have a signed OCA",
		Long: `Check-oca lists the commits of the pull request, skips authors from exempt
email domains, and asks the OCA membership service about every remaining author.

Authors are the GitHub accounts linked to the commits. The email checked against the
exempt domains is the account's public profile email, not the git commit email, so
it costs one extra API call per distinct author. An author from an exempt domain who
hides their profile email is not exempt and is looked up like everyone else.

The PR gets the "signed" label when every author is verified and the "not-signed"
label otherwise; exactly one of the two is attached afterwards. The command exits
non-zero unless every author is verified.

Reads GITHUB_REPOSITORY, GITHUB_REF and GITHUB_EVENT_NAME from the environment.
The membership service URL comes from oca.base_url or OCA_API_URL.`,
		ExampleUsage: []string{
			`pr-checks check-oca "$GITHUB_TOKEN" "ready" "${{ github.event.number }}"`,
		},
	}

	return builder.BuildCommand(func(cobraCmd *cobra.Command, args []string) error {
		bc := &commands.BaseCommand{
			ConfigFile: globalConfigFile,
			LoadConfig: loadConfig,
		}
		return runCheckOCA(cobraCmd.Context(), bc, args)
	})
}

func runCheckOCA(ctx context.Context, bc *commands.BaseCommand, args []string) error {
	if err := bc.Init(ctx, args); err != nil {
		return err
	}
	check := bc.Check

	if check.OCAURL == "" {
		return fmt.Errorf("%w: no OCA membership service configured (set oca.base_url or OCA_API_URL)", cmd.ErrMissingEnvironment)
	}

	commits, err := bc.GitHubClient.ListPRCommits(ctx, check.PRNumber)
	if err != nil {
		return err
	}

	authors := oca.ExtractAuthors(commits, oca.NewExemptions(bc.Config.OCA.ExemptEmailDomains))
	slog.Info("Extracted PR authors", "pr", check.PRNumber, "commits", len(commits), "authors", len(authors))

	client := oca.NewClient(check.OCAURL, oca.WithTimeout(bc.Config.OCA.Timeout))
	result, err := oca.Verify(ctx, client, authors)
	if err != nil {
		return err
	}

	reconciler := labels.NewReconciler(bc.GitHubClient, bc.Config.Labels)
	changes, err := reconciler.Reconcile(ctx, check.PRNumber, result.Outcome)
	if err != nil {
		return fmt.Errorf("failed to update labels of PR #%d: %w", check.PRNumber, err)
	}

	commands.DisplayOCAResult(check.PRNumber, result, changes)

	if !result.Verified() {
		return fmt.Errorf("%w: OCA verification of PR #%d is %s", cmd.ErrCheckFailed, check.PRNumber, result.Outcome)
	}
	return nil
}
