package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config represents the complete, fully-defaulted branchr configuration.
type Config struct {
	Branch     BranchConfig  `toml:"branch"`
	Display    DisplayConfig `toml:"display"`
	Git        GitConfig     `toml:"git"`
	Jira       JiraConfig    `toml:"jira"`
	QuickLinks []QuickLink   `toml:"quick_links"`
}

// Validate checks that all config values are valid.
// Returns an error describing the first invalid value found.
func (c Config) Validate() error {
	if c.Git.Timeout < 0 {
		return errors.New("git.timeout cannot be negative")
	}
	if c.Jira.Timeout < 0 {
		return errors.New("jira.timeout cannot be negative")
	}
	if c.Jira.BoardURL != "" && !IsWebURL(c.Jira.BoardURL) {
		return fmt.Errorf("jira.board_url must be an http or https URL: %q", c.Jira.BoardURL)
	}
	return nil
}

// Warnings reports settings that are valid but almost certainly not what the
// user meant. They never stop a derivation.
func (c Config) Warnings() []string {
	var warnings []string
	if c.Branch.ReplacePrefix && c.Branch.CustomPrefix == "" {
		warnings = append(warnings, "branch.replace_prefix is enabled but branch.custom_prefix is empty; issue branches will use the placeholder prefix")
	}
	if c.Jira.AssigneeID != "" && c.Jira.BoardURL == "" {
		warnings = append(warnings, "jira.assignee_id is set without jira.board_url; the My Stories link is disabled")
	}
	for i, link := range c.QuickLinks {
		if link.Inert() {
			warnings = append(warnings, fmt.Sprintf("quick_links[%d] needs both a label and a url; it will be ignored", i))
		}
	}
	return warnings
}

// BranchConfig configures branch name composition.
type BranchConfig struct {
	PrefixBefore       string `toml:"prefix_before"`        // e.g., "feature/"
	PrefixAfter        string `toml:"prefix_after"`         // e.g., "-wip"
	ReplacePrefix      bool   `toml:"replace_prefix"`       // use CustomPrefix instead of the issue key
	CustomPrefix       string `toml:"custom_prefix"`        // literal prefix in replace mode
	CustomBranchPrefix string `toml:"custom_branch_prefix"` // prefix for free-text branches
}

// DisplayConfig toggles optional parts of the text output.
type DisplayConfig struct {
	HideGitCommand    bool `toml:"hide_git_command"`
	HideCustomSection bool `toml:"hide_custom_section"`
}

// GitConfig configures git command execution.
type GitConfig struct {
	Timeout time.Duration `toml:"timeout"` // Timeout for git commands (e.g., "5s")
}

// JiraConfig configures the Jira board links and issue page fetching.
type JiraConfig struct {
	BoardURL   string        `toml:"board_url"`
	AssigneeID string        `toml:"assignee_id"`
	HostSuffix string        `toml:"host_suffix"` // fetched issue pages must live under this host
	Timeout    time.Duration `toml:"timeout"`
}

// QuickLink is a labelled URL template. Every case-insensitive "<branch>" in
// URL is replaced with the derived branch name.
type QuickLink struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
}

// Inert reports whether the link is missing its label or url and can never
// produce output.
func (l QuickLink) Inert() bool {
	return strings.TrimSpace(l.Label) == "" || strings.TrimSpace(l.URL) == ""
}

// IsWebURL reports whether raw parses as an absolute http or https URL with a host.
func IsWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
