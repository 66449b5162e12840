package config

import "time"

const (
	// DefaultCustomBranchPrefix prefixes free-text branches when none is configured.
	DefaultCustomBranchPrefix = "GOAT-0000"

	// DefaultJiraHostSuffix is the host suffix of Jira Cloud sites.
	DefaultJiraHostSuffix = "atlassian.net"

	DefaultGitTimeout  = 5 * time.Second
	DefaultJiraTimeout = 10 * time.Second
)

// DefaultConfig returns sensible defaults for all configuration.
func DefaultConfig() Config {
	return ApplyDefaults(Record{})
}

// ApplyDefaults fills every field r leaves unset. Strings with a non-empty
// default also fall back to it when set to "", so an emptied field in a
// settings file behaves like a missing one.
func ApplyDefaults(r Record) Config {
	links := make([]QuickLink, len(r.QuickLinks))
	copy(links, r.QuickLinks)

	return Config{
		Branch: BranchConfig{
			PrefixBefore:       valueOr(r.Branch.PrefixBefore, ""),
			PrefixAfter:        valueOr(r.Branch.PrefixAfter, ""),
			ReplacePrefix:      valueOr(r.Branch.ReplacePrefix, false),
			CustomPrefix:       valueOr(r.Branch.CustomPrefix, ""),
			CustomBranchPrefix: nonEmptyOr(r.Branch.CustomBranchPrefix, DefaultCustomBranchPrefix),
		},
		Display: DisplayConfig{
			HideGitCommand:    valueOr(r.Display.HideGitCommand, false),
			HideCustomSection: valueOr(r.Display.HideCustomSection, false),
		},
		Git: GitConfig{
			Timeout: valueOr(r.Git.Timeout, DefaultGitTimeout),
		},
		Jira: JiraConfig{
			BoardURL:   valueOr(r.Jira.BoardURL, ""),
			AssigneeID: valueOr(r.Jira.AssigneeID, ""),
			HostSuffix: nonEmptyOr(r.Jira.HostSuffix, DefaultJiraHostSuffix),
			Timeout:    valueOr(r.Jira.Timeout, DefaultJiraTimeout),
		},
		QuickLinks: links,
	}
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func nonEmptyOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
