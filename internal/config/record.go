package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Record is a possibly-partial configuration as persisted by a config file or
// a Store. A nil field was never configured and is filled by ApplyDefaults.
type Record struct {
	Branch     BranchRecord  `toml:"branch,omitempty"`
	Display    DisplayRecord `toml:"display,omitempty"`
	Git        GitRecord     `toml:"git,omitempty"`
	Jira       JiraRecord    `toml:"jira,omitempty"`
	QuickLinks []QuickLink   `toml:"quick_links,omitempty"`
}

// BranchRecord is the partial form of BranchConfig.
type BranchRecord struct {
	PrefixBefore       *string `toml:"prefix_before"`
	PrefixAfter        *string `toml:"prefix_after"`
	ReplacePrefix      *bool   `toml:"replace_prefix"`
	CustomPrefix       *string `toml:"custom_prefix"`
	CustomBranchPrefix *string `toml:"custom_branch_prefix"`
}

// DisplayRecord is the partial form of DisplayConfig.
type DisplayRecord struct {
	HideGitCommand    *bool `toml:"hide_git_command"`
	HideCustomSection *bool `toml:"hide_custom_section"`
}

// GitRecord is the partial form of GitConfig.
type GitRecord struct {
	Timeout *time.Duration `toml:"timeout"`
}

// JiraRecord is the partial form of JiraConfig.
type JiraRecord struct {
	BoardURL   *string        `toml:"board_url"`
	AssigneeID *string        `toml:"assignee_id"`
	HostSuffix *string        `toml:"host_suffix"`
	Timeout    *time.Duration `toml:"timeout"`
}

// Record returns the fully-populated record of c.
// ApplyDefaults(c.Record()) == c for any defaulted c.
func (c Config) Record() Record {
	links := make([]QuickLink, len(c.QuickLinks))
	copy(links, c.QuickLinks)

	return Record{
		Branch: BranchRecord{
			PrefixBefore:       ptr(c.Branch.PrefixBefore),
			PrefixAfter:        ptr(c.Branch.PrefixAfter),
			ReplacePrefix:      ptr(c.Branch.ReplacePrefix),
			CustomPrefix:       ptr(c.Branch.CustomPrefix),
			CustomBranchPrefix: ptr(c.Branch.CustomBranchPrefix),
		},
		Display: DisplayRecord{
			HideGitCommand:    ptr(c.Display.HideGitCommand),
			HideCustomSection: ptr(c.Display.HideCustomSection),
		},
		Git: GitRecord{
			Timeout: ptr(c.Git.Timeout),
		},
		Jira: JiraRecord{
			BoardURL:   ptr(c.Jira.BoardURL),
			AssigneeID: ptr(c.Jira.AssigneeID),
			HostSuffix: ptr(c.Jira.HostSuffix),
			Timeout:    ptr(c.Jira.Timeout),
		},
		QuickLinks: links,
	}
}

// Merge layers override on top of base. Fields set in override win; quick
// links are replaced as a whole when override sets them.
func Merge(base, override Record) Record {
	merged := base

	mergeField(&merged.Branch.PrefixBefore, override.Branch.PrefixBefore)
	mergeField(&merged.Branch.PrefixAfter, override.Branch.PrefixAfter)
	mergeField(&merged.Branch.ReplacePrefix, override.Branch.ReplacePrefix)
	mergeField(&merged.Branch.CustomPrefix, override.Branch.CustomPrefix)
	mergeField(&merged.Branch.CustomBranchPrefix, override.Branch.CustomBranchPrefix)
	mergeField(&merged.Display.HideGitCommand, override.Display.HideGitCommand)
	mergeField(&merged.Display.HideCustomSection, override.Display.HideCustomSection)
	mergeField(&merged.Git.Timeout, override.Git.Timeout)
	mergeField(&merged.Jira.BoardURL, override.Jira.BoardURL)
	mergeField(&merged.Jira.AssigneeID, override.Jira.AssigneeID)
	mergeField(&merged.Jira.HostSuffix, override.Jira.HostSuffix)
	mergeField(&merged.Jira.Timeout, override.Jira.Timeout)

	if override.QuickLinks != nil {
		merged.QuickLinks = append([]QuickLink{}, override.QuickLinks...)
	}

	return merged
}

// recordField binds a dotted TOML key to the setter and clearer of a Record field.
type recordField struct {
	set   func(r *Record, value string) error
	unset func(r *Record)
}

var recordFields = map[string]recordField{
	"branch.prefix_before":        stringField(func(r *Record) **string { return &r.Branch.PrefixBefore }),
	"branch.prefix_after":         stringField(func(r *Record) **string { return &r.Branch.PrefixAfter }),
	"branch.replace_prefix":       boolField(func(r *Record) **bool { return &r.Branch.ReplacePrefix }),
	"branch.custom_prefix":        stringField(func(r *Record) **string { return &r.Branch.CustomPrefix }),
	"branch.custom_branch_prefix": stringField(func(r *Record) **string { return &r.Branch.CustomBranchPrefix }),
	"display.hide_git_command":    boolField(func(r *Record) **bool { return &r.Display.HideGitCommand }),
	"display.hide_custom_section": boolField(func(r *Record) **bool { return &r.Display.HideCustomSection }),
	"git.timeout":                 durationField(func(r *Record) **time.Duration { return &r.Git.Timeout }),
	"jira.board_url":              stringField(func(r *Record) **string { return &r.Jira.BoardURL }),
	"jira.assignee_id":            stringField(func(r *Record) **string { return &r.Jira.AssigneeID }),
	"jira.host_suffix":            stringField(func(r *Record) **string { return &r.Jira.HostSuffix }),
	"jira.timeout":                durationField(func(r *Record) **time.Duration { return &r.Jira.Timeout }),
}

// Keys returns every key accepted by Set and Unset, sorted.
func Keys() []string {
	keys := make([]string, 0, len(recordFields))
	for k := range recordFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value and stores it under a dotted key such as "branch.custom_prefix".
func (r *Record) Set(key, value string) error {
	field, ok := recordFields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := field.set(r, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Unset clears a dotted key so that its default applies again.
func (r *Record) Unset(key string) error {
	field, ok := recordFields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	field.unset(r)
	return nil
}

func stringField(get func(*Record) **string) recordField {
	return recordField{
		set: func(r *Record, value string) error {
			*get(r) = &value
			return nil
		},
		unset: func(r *Record) { *get(r) = nil },
	}
}

func boolField(get func(*Record) **bool) recordField {
	return recordField{
		set: func(r *Record, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*get(r) = &b
			return nil
		},
		unset: func(r *Record) { *get(r) = nil },
	}
}

func durationField(get func(*Record) **time.Duration) recordField {
	return recordField{
		set: func(r *Record, value string) error {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			*get(r) = &d
			return nil
		},
		unset: func(r *Record) { *get(r) = nil },
	}
}

func mergeField[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func ptr[T any](v T) *T {
	return &v
}
