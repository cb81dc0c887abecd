package github

// PR represents a pull request from GitHub
type PR struct {
	Number         int
	Title          string
	URL            string
	HeadSHA        string
	MergeCommitSHA string // empty until GitHub has computed the test merge
	BaseRepo       string // full name, e.g. "org/repo"
	HeadRepo       string
}

// IsFork reports whether the PR was opened from a different repository
func (p *PR) IsFork() bool {
	return p.HeadRepo != p.BaseRepo
}

// Commit represents a commit from a PR, reduced to its author identity
type Commit struct {
	SHA         string
	AuthorLogin string  // empty when the commit email is not linked to a GitHub account
	AuthorEmail *string // public profile email of the linked account, nil if hidden
}
