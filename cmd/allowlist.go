package cmd

import (
	"slices"
	"strings"
)

// AllowList is the set of label names that satisfy the label gate check
type AllowList map[string]struct{}

// NewAllowList builds an allow list from label names, dropping blanks
func NewAllowList(names ...string) AllowList {
	allow := make(AllowList, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			allow[name] = struct{}{}
		}
	}
	return allow
}

// Contains reports exact membership of name
func (a AllowList) Contains(name string) bool {
	_, ok := a[name]
	return ok
}

// Names returns the allowed labels in sorted order
func (a AllowList) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String renders the allow list as shown to users
func (a AllowList) String() string {
	return "[" + strings.Join(a.Names(), ", ") + "]"
}
