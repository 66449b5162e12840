// Package links resolves quick link templates against a branch name.
package links

import (
	"iter"
	"regexp"
	"strings"

	"github.com/jmcampanini/branchr/internal/config"
)

// Link is a resolved, clickable link.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

var branchPlaceholderRegex = regexp.MustCompile(`(?i)<branch>`)

// All yields the links resolved from templates, in template order.
//
// Templates missing a label or url are skipped, as is any template whose
// resolved url is not an absolute http or https URL. One bad template never
// hides the others.
func All(templates []config.QuickLink, branch string) iter.Seq[Link] {
	return func(yield func(Link) bool) {
		for _, tmpl := range templates {
			link, ok := resolve(tmpl, branch)
			if !ok {
				continue
			}
			if !yield(link) {
				return
			}
		}
	}
}

// Resolve returns all resolved links. The result is never nil.
func Resolve(templates []config.QuickLink, branch string) []Link {
	resolved := []Link{}
	for link := range All(templates, branch) {
		resolved = append(resolved, link)
	}
	return resolved
}

// Expand substitutes branch for every case-insensitive "<branch>" in url. The
// branch name is inserted as-is, without URL escaping.
func Expand(url, branch string) string {
	return branchPlaceholderRegex.ReplaceAllLiteralString(url, branch)
}

func resolve(tmpl config.QuickLink, branch string) (Link, bool) {
	label := strings.TrimSpace(tmpl.Label)
	url := strings.TrimSpace(tmpl.URL)
	if label == "" || url == "" {
		return Link{}, false
	}

	resolved := Expand(url, branch)
	if !config.IsWebURL(resolved) {
		return Link{}, false
	}

	return Link{Label: label, URL: resolved}, true
}
