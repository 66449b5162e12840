// Package issue supplies issue metadata to branch name derivation.
package issue

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound means the source holds no usable issue key and title.
	ErrNotFound = errors.New("no issue found")

	// ErrNotJira means the page is not hosted on the configured Jira site.
	ErrNotJira = errors.New("not a Jira issue page")
)

// Info describes one external issue.
type Info struct {
	IssueKey  string `json:"issueKey"`
	StoryName string `json:"storyName"`
	URL       string `json:"url,omitempty"`
}

// Source supplies the issue for a single derivation.
type Source interface {
	// Fetch returns the issue, or an error when none could be found.
	Fetch(ctx context.Context) (Info, error)
}

// Manual is a Source built from user-supplied values.
type Manual struct {
	Key   string
	Title string
	URL   string
}

var _ Source = Manual{}

func (m Manual) Fetch(ctx context.Context) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	return newInfo(m.Key, m.Title, m.URL)
}

// newInfo trims the values and requires both a key and a title.
func newInfo(key, title, url string) (Info, error) {
	info := Info{
		IssueKey:  strings.TrimSpace(key),
		StoryName: strings.TrimSpace(title),
		URL:       strings.TrimSpace(url),
	}
	if info.IssueKey == "" || info.StoryName == "" {
		return Info{}, ErrNotFound
	}
	return info, nil
}
