// Package labels keeps the signed/not-signed agreement labels of a pull request in sync
// with the author verification outcome.
package labels

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alan/pr-checks/cmd"
	"github.com/alan/pr-checks/internal/oca"
)

// Store is the subset of the GitHub client the reconciler mutates
type Store interface {
	ListLabels(ctx context.Context) ([]string, error)
	ListIssueLabels(ctx context.Context, number int) ([]string, error)
	CreateLabel(ctx context.Context, spec cmd.LabelSpec) error
	AddLabel(ctx context.Context, number int, name string) error
	RemoveLabel(ctx context.Context, number int, name string) error
}

// Desired is the label state a PR should end up in
type Desired struct {
	Present cmd.LabelSpec
	Absent  cmd.LabelSpec
}

// Changes records the mutations a reconcile performed
type Changes struct {
	Created []string
	Added   []string
	Removed []string
}

// Empty reports whether the PR was already in the desired state
func (c *Changes) Empty() bool {
	return len(c.Created) == 0 && len(c.Added) == 0 && len(c.Removed) == 0
}

// Reconciler attaches exactly one of the two agreement labels
type Reconciler struct {
	store     Store
	signed    cmd.LabelSpec
	notSigned cmd.LabelSpec
}

// NewReconciler creates a reconciler using the label specs in cfg
func NewReconciler(store Store, cfg cmd.LabelsConfig) *Reconciler {
	return &Reconciler{
		store:     store,
		signed:    cfg.Signed,
		notSigned: cfg.NotSigned,
	}
}

// DesiredFor maps an outcome to its label state. Only a verified outcome earns the signed label.
func (r *Reconciler) DesiredFor(outcome oca.Outcome) Desired {
	if outcome == oca.OutcomeVerified {
		return Desired{Present: r.signed, Absent: r.notSigned}
	}
	return Desired{Present: r.notSigned, Absent: r.signed}
}

// Reconcile brings the labels of PR number in line with outcome.
// Running it twice with the same outcome performs no mutation the second time.
func (r *Reconciler) Reconcile(ctx context.Context, number int, outcome oca.Outcome) (*Changes, error) {
	desired := r.DesiredFor(outcome)

	registry, err := r.store.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	attached, err := r.store.ListIssueLabels(ctx, number)
	if err != nil {
		return nil, err
	}

	changes := &Changes{}

	// Label names are case-insensitive on GitHub; reuse whatever spelling already exists
	presentName, ok := findLabel(registry, desired.Present.Name)
	if !ok {
		if err := r.store.CreateLabel(ctx, desired.Present); err != nil {
			return changes, err
		}
		slog.Info("Created label", "label", desired.Present.Name, "color", desired.Present.Color)
		changes.Created = append(changes.Created, desired.Present.Name)
		presentName = desired.Present.Name
	}

	if _, ok := findLabel(attached, presentName); !ok {
		if err := r.store.AddLabel(ctx, number, presentName); err != nil {
			return changes, err
		}
		slog.Info("Added label", "pr", number, "label", presentName)
		changes.Added = append(changes.Added, presentName)
	}

	for _, name := range attached {
		if !strings.EqualFold(name, desired.Absent.Name) {
			continue
		}
		if err := r.store.RemoveLabel(ctx, number, name); err != nil {
			return changes, err
		}
		slog.Info("Removed label", "pr", number, "label", name)
		changes.Removed = append(changes.Removed, name)
	}

	return changes, nil
}

// findLabel returns the spelling of name used in names, compared case-insensitively
func findLabel(names []string, name string) (string, bool) {
	idx := slices.IndexFunc(names, func(n string) bool {
		return strings.EqualFold(n, name)
	})
	if idx < 0 {
		return "", false
	}
	return names[idx], true
}

// String summarizes the changes for display
func (c *Changes) String() string {
	if c.Empty() {
		return "labels already up to date"
	}
	return fmt.Sprintf("created %v, added %v, removed %v", c.Created, c.Added, c.Removed)
}
