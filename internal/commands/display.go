package commands

import (
	"fmt"
	"strings"

	"github.com/alan/pr-checks/internal/gate"
	"github.com/alan/pr-checks/internal/labels"
	"github.com/alan/pr-checks/internal/oca"
)

// formatCheckContext echoes the inputs of a check run
func formatCheckContext(check *CheckContext) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("Valid labels are: %s\n", check.AllowList))
	msg.WriteString(fmt.Sprintf("Pull request number: %d\n", check.PRNumber))
	msg.WriteString(fmt.Sprintf("github_ref: %s\n", check.Ref))
	return msg.String()
}

// DisplayCheckContext prints the resolved inputs of a check run
func DisplayCheckContext(check *CheckContext) {
	fmt.Print(formatCheckContext(check))
}

// formatOCAResult creates the summary of an author verification
func formatOCAResult(prNumber int, result *oca.Result, changes *labels.Changes) string {
	var msg strings.Builder

	for _, ar := range result.Failing() {
		login := ar.Author.Login
		if login == "" {
			login = "(no GitHub account)"
		}
		msg.WriteString(fmt.Sprintf("❌ Author %s doesn't have an approved OCA\n", login))
	}
	if result.Unexpected > 0 {
		msg.WriteString(fmt.Sprintf("⚠️  %d OCA lookup(s) returned an unexpected status\n", result.Unexpected))
	}

	switch result.Outcome {
	case oca.OutcomeVerified:
		msg.WriteString(fmt.Sprintf("✅ All %d author(s) of PR #%d have a signed OCA\n", len(result.Authors), prNumber))
	case oca.OutcomeIndeterminate:
		msg.WriteString(fmt.Sprintf("❌ PR #%d has no author to verify\n", prNumber))
	default:
		msg.WriteString(fmt.Sprintf("❌ %d of %d author(s) of PR #%d are not verified\n", len(result.Failing()), len(result.Authors), prNumber))
	}

	if changes != nil {
		msg.WriteString(fmt.Sprintf("🏷️  Labels: %s\n", changes))
	}

	return msg.String()
}

// DisplayOCAResult prints the author verification summary
func DisplayOCAResult(prNumber int, result *oca.Result, changes *labels.Changes) {
	fmt.Print(formatOCAResult(prNumber, result, changes))
}

// formatGateResult creates the summary of a label gate check
func formatGateResult(result *gate.Result, allowList fmt.Stringer) string {
	if result.Valid {
		return fmt.Sprintf("✅ Success! PR #%d contains a valid label from %s (status %q on %s)\n",
			result.PR.Number, allowList, result.Status.State, shortSHA(result.SHA))
	}
	return fmt.Sprintf("❌ Error! PR #%d does not contain any of the valid labels %s (status %q on %s)\n",
		result.PR.Number, allowList, result.Status.State, shortSHA(result.SHA))
}

// DisplayGateResult prints the label gate verdict
func DisplayGateResult(result *gate.Result, allowList fmt.Stringer) {
	fmt.Print(formatGateResult(result, allowList))
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
