package oca

import (
	"strings"

	"github.com/alan/pr-checks/internal/github"
)

// CommitAuthor is the GitHub identity behind one or more PR commits
type CommitAuthor struct {
	Login string
	Email *string
}

// Exemptions holds the email domains whose authors are not verified
type Exemptions struct {
	domains []string
}

// NewExemptions builds an exemption set from bare domains such as "oracle.com"
func NewExemptions(domains []string) Exemptions {
	var e Exemptions
	for _, d := range domains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" {
			e.domains = append(e.domains, d)
		}
	}
	return e
}

// IsExempt reports whether email belongs to an exempt domain. A nil email is never exempt.
func (e Exemptions) IsExempt(email *string) bool {
	if email == nil {
		return false
	}
	addr := strings.ToLower(strings.TrimSpace(*email))
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return false
	}
	for _, d := range e.domains {
		if addr[at+1:] == d {
			return true
		}
	}
	return false
}

// ExtractAuthors returns the distinct non-exempt authors of commits, in order of first
// appearance. Authors are keyed by case-insensitive login.
func ExtractAuthors(commits []github.Commit, exempt Exemptions) []CommitAuthor {
	seen := make(map[string]bool)
	var authors []CommitAuthor

	for _, commit := range commits {
		if exempt.IsExempt(commit.AuthorEmail) {
			continue
		}

		key := strings.ToLower(commit.AuthorLogin)
		if seen[key] {
			continue
		}
		seen[key] = true

		authors = append(authors, CommitAuthor{
			Login: commit.AuthorLogin,
			Email: commit.AuthorEmail,
		})
	}

	return authors
}
