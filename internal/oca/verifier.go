package oca

import (
	"context"
	"log/slog"
	"strings"
)

// MemberChecker answers membership questions for a single login
type MemberChecker interface {
	CheckMember(ctx context.Context, login string) (MemberCheck, error)
}

// Outcome is the aggregate verdict over all authors of a PR
type Outcome int

const (
	// OutcomeIndeterminate means there was no author to verify
	OutcomeIndeterminate Outcome = iota
	// OutcomeVerified means every author has a signed agreement
	OutcomeVerified
	// OutcomeNotVerified means at least one author lacks a signed agreement
	OutcomeNotVerified
)

// String returns the outcome as shown in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeNotVerified:
		return "not-verified"
	default:
		return "indeterminate"
	}
}

// AuthorResult pairs an author with the membership answer for its own login
type AuthorResult struct {
	Author CommitAuthor
	Check  MemberCheck
}

// Result is the outcome of verifying a PR's authors
type Result struct {
	Outcome    Outcome
	Authors    []AuthorResult
	Unexpected int // answers other than 200/404
}

// Verified reports whether the PR passes the agreement check
func (r *Result) Verified() bool {
	return r.Outcome == OutcomeVerified
}

// Failing returns the authors that did not verify
func (r *Result) Failing() []AuthorResult {
	var failing []AuthorResult
	for _, ar := range r.Authors {
		if ar.Check.Verdict != VerdictVerified {
			failing = append(failing, ar)
		}
	}
	return failing
}

// Verify checks every author and aggregates the verdicts.
// Blank logins are not sent to the checker. The first transport error aborts the run.
func Verify(ctx context.Context, checker MemberChecker, authors []CommitAuthor) (*Result, error) {
	result := &Result{}

	for _, author := range authors {
		check := MemberCheck{Login: author.Login, Verdict: VerdictUnknown}
		if strings.TrimSpace(author.Login) != "" {
			var err error
			check, err = checker.CheckMember(ctx, author.Login)
			if err != nil {
				return nil, err
			}
		}
		if check.Warning != nil {
			result.Unexpected++
		}

		slog.Info("Author checked", "login", author.Login, "verdict", check.Verdict)
		result.Authors = append(result.Authors, AuthorResult{Author: author, Check: check})
	}

	result.Outcome = Aggregate(result.Authors)
	return result, nil
}

// Aggregate is OutcomeVerified iff results is non-empty and every verdict is verified
func Aggregate(results []AuthorResult) Outcome {
	if len(results) == 0 {
		return OutcomeIndeterminate
	}
	for _, r := range results {
		if r.Check.Verdict != VerdictVerified {
			return OutcomeNotVerified
		}
	}
	return OutcomeVerified
}
