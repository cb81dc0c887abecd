// Package cmd defines core data structures for pr-checks configuration and check results.
package cmd

import "time"

// Event names reported by GitHub Actions in GITHUB_EVENT_NAME
const (
	// EventPullRequestTarget runs in the context of the base repository and is the only
	// trigger allowed to act on PRs opened from forks
	EventPullRequestTarget = "pull_request_target"
	// EventPullRequest is the regular pull request trigger
	EventPullRequest = "pull_request"
)

// StatusState is the state of a published commit status
type StatusState string

const (
	// StatusSuccess marks the gate check as passed
	StatusSuccess StatusState = "success"
	// StatusFailure marks the gate check as failed
	StatusFailure StatusState = "failure"
)

// Config represents the structure of the pr-checks YAML file
type Config struct {
	OCA    OCAConfig    `yaml:"oca"`
	Labels LabelsConfig `yaml:"labels"`
	Status StatusConfig `yaml:"status"`
	Poll   PollConfig   `yaml:"poll"`
}

// OCAConfig configures the contributor agreement membership lookup
type OCAConfig struct {
	BaseURL            string        `yaml:"base_url,omitempty"`
	ExemptEmailDomains []string      `yaml:"exempt_email_domains,omitempty"`
	Timeout            time.Duration `yaml:"timeout,omitempty"`
}

// LabelsConfig holds the two mutually exclusive agreement labels
type LabelsConfig struct {
	Signed    LabelSpec `yaml:"signed"`
	NotSigned LabelSpec `yaml:"not_signed"`
}

// LabelSpec describes a label as it should exist in the repository registry
type LabelSpec struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	Description string `yaml:"description,omitempty"`
}

// StatusConfig configures the commit status published by the label gate check
type StatusConfig struct {
	Context            string `yaml:"context"`
	TargetURL          string `yaml:"target_url,omitempty"` // defaults to the PR's HTML URL
	SuccessDescription string `yaml:"success_description,omitempty"`
	FailureDescription string `yaml:"failure_description,omitempty"`
}

// PollConfig bounds the wait for GitHub to compute a PR's merge commit
type PollConfig struct {
	Attempts int           `yaml:"attempts"`
	Interval time.Duration `yaml:"interval"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		OCA: OCAConfig{
			ExemptEmailDomains: []string{"oracle.com"},
			Timeout:            30 * time.Second,
		},
		Labels: LabelsConfig{
			Signed: LabelSpec{
				Name:        "signed",
				Color:       "0e8a16",
				Description: "All commit authors have a signed contributor agreement",
			},
			NotSigned: LabelSpec{
				Name:        "not-signed",
				Color:       "d93f0b",
				Description: "At least one commit author has no signed contributor agreement",
			},
		},
		Status: StatusConfig{
			Context:            "PR Label Check",
			SuccessDescription: "Label check succeeded",
			FailureDescription: "Label check failed",
		},
		Poll: PollConfig{
			Attempts: 10,
			Interval: 5 * time.Second,
		},
	}
}

// ApplyDefaults fills every zero-valued field from DefaultConfig
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()

	if len(c.OCA.ExemptEmailDomains) == 0 {
		c.OCA.ExemptEmailDomains = def.OCA.ExemptEmailDomains
	}
	if c.OCA.Timeout <= 0 {
		c.OCA.Timeout = def.OCA.Timeout
	}
	c.Labels.Signed = c.Labels.Signed.withDefaults(def.Labels.Signed)
	c.Labels.NotSigned = c.Labels.NotSigned.withDefaults(def.Labels.NotSigned)
	if c.Status.Context == "" {
		c.Status.Context = def.Status.Context
	}
	if c.Status.SuccessDescription == "" {
		c.Status.SuccessDescription = def.Status.SuccessDescription
	}
	if c.Status.FailureDescription == "" {
		c.Status.FailureDescription = def.Status.FailureDescription
	}
	if c.Poll.Attempts <= 0 {
		c.Poll.Attempts = def.Poll.Attempts
	}
	if c.Poll.Interval <= 0 {
		c.Poll.Interval = def.Poll.Interval
	}
}

func (l LabelSpec) withDefaults(def LabelSpec) LabelSpec {
	if l.Name == "" {
		l.Name = def.Name
		if l.Description == "" {
			l.Description = def.Description
		}
	}
	if l.Color == "" {
		l.Color = def.Color
	}
	return l
}
