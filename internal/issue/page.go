package issue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// data-testid values Jira Cloud puts on the issue view.
const (
	summaryTestID  = "issue.views.issue-base.foundation.summary.heading"
	issueKeyTestID = "issue.views.issue-base.foundation.breadcrumbs.current-issue.item"
)

// ParsePage extracts the issue key and summary from a Jira issue page.
// pageURL is recorded as the issue URL. Returns ErrNotFound if either element
// is missing or empty.
func ParsePage(r io.Reader, pageURL string) (Info, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Info{}, fmt.Errorf("failed to parse issue page: %w", err)
	}

	summary := findByTestID(doc, summaryTestID)
	key := findByTestID(doc, issueKeyTestID)
	if summary == nil || key == nil {
		return Info{}, ErrNotFound
	}

	return newInfo(textContent(key), textContent(summary), pageURL)
}

// PageFile is a Source that reads a saved issue page from disk, or from Stdin
// when Path is "-".
type PageFile struct {
	Path  string
	URL   string // original page URL, if known
	Stdin io.Reader
}

var _ Source = PageFile{}

func (p PageFile) Fetch(ctx context.Context) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	if p.Path == "-" {
		if p.Stdin == nil {
			return Info{}, fmt.Errorf("no stdin to read the issue page from")
		}
		return ParsePage(p.Stdin, p.URL)
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read issue page: %w", err)
	}
	return ParsePage(bytes.NewReader(data), p.URL)
}

// findByTestID returns the first element, in document order, whose
// data-testid attribute equals id.
func findByTestID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "data-testid" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByTestID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// textContent concatenates the text of every descendant text node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
