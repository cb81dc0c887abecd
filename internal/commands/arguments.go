package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alan/pr-checks/cmd"
)

var pullRefPattern = regexp.MustCompile(`refs/pull/(\d+)/merge`)

// CheckArgs holds the positional arguments shared by both checks
type CheckArgs struct {
	Token       string
	ValidLabels string // raw input, as echoed to the user
	PRNumber    string // only meaningful under pull_request_target
}

// ParseCheckArgs parses <token> <valid_labels> <pr_number>
func ParseCheckArgs(args []string) (*CheckArgs, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: expected <token> <valid_labels> <pr_number>, got %d argument(s)", cmd.ErrInvalidArguments, len(args))
	}
	if strings.TrimSpace(args[0]) == "" {
		return nil, fmt.Errorf("%w: token is empty", cmd.ErrInvalidArguments)
	}

	return &CheckArgs{
		Token:       args[0],
		ValidLabels: args[1],
		PRNumber:    args[2],
	}, nil
}

// ParseAllowList splits a comma- or newline-separated label list. Surrounding brackets
// and quotes are stripped so that list literals such as ["ready", "approved"] also parse.
func ParseAllowList(raw string) cmd.AllowList {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, strings.Trim(field, " \t[]\"'"))
	}
	return cmd.NewAllowList(names...)
}

// ResolvePRNumber determines the PR under test. Under pull_request_target the number comes
// from the input argument; otherwise it is extracted from the merge ref.
func ResolvePRNumber(eventName, ref, input string) (int, error) {
	if eventName == cmd.EventPullRequestTarget {
		number, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || number <= 0 {
			return 0, fmt.Errorf("%w: a valid pull request number input must be defined when triggering on %q, got %q",
				cmd.ErrInvalidPRNumber, cmd.EventPullRequestTarget, input)
		}
		return number, nil
	}

	match := pullRefPattern.FindStringSubmatch(ref)
	if match == nil {
		return 0, fmt.Errorf("%w: could not extract it from GITHUB_REF %q", cmd.ErrPRNumberNotFound, ref)
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", cmd.ErrPRNumberNotFound, ref, err)
	}
	return number, nil
}
