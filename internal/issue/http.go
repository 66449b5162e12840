package issue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// MaxPageBytes caps the size of a fetched issue page.
const MaxPageBytes = 5 << 20

// HTTPSource fetches a Jira issue page and parses it with ParsePage.
type HTTPSource struct {
	client     *http.Client
	header     http.Header
	hostSuffix string
	log        *clog.Logger
	timeout    time.Duration
	url        string
}

var _ Source = &HTTPSource{}

// NewHTTPSource creates a source for pageURL. Only hosts equal to hostSuffix or
// ending in "."+hostSuffix are fetched. header is sent with the request and
// may carry a session cookie.
func NewHTTPSource(pageURL, hostSuffix string, timeout time.Duration, header http.Header) *HTTPSource {
	return &HTTPSource{
		client:     http.DefaultClient,
		header:     header,
		hostSuffix: hostSuffix,
		log:        clog.Default().WithPrefix("issue"),
		timeout:    timeout,
		url:        pageURL,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (Info, error) {
	u, err := url.Parse(s.url)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Info{}, fmt.Errorf("invalid issue URL %q", s.url)
	}
	if !hostMatches(u.Hostname(), s.hostSuffix) {
		return Info{}, fmt.Errorf("%w: %s is not under %s", ErrNotJira, u.Hostname(), s.hostSuffix)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Info{}, fmt.Errorf("failed to build request: %w", err)
	}
	for k, values := range s.header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "text/html")

	s.log.Debug("Fetching issue page", "url", s.url, "timeout", s.timeout)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Info{}, fmt.Errorf("fetching %s timed out after %s", s.url, s.timeout)
		}
		return Info{}, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Info{}, fmt.Errorf("fetching %s: unexpected status %s", s.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes+1))
	if err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", s.url, err)
	}
	if len(body) > MaxPageBytes {
		return Info{}, fmt.Errorf("issue page %s is larger than %s", s.url, humanize.IBytes(MaxPageBytes))
	}

	s.log.Debug("Fetched issue page", "url", s.url, "size", humanize.IBytes(uint64(len(body))))
	return ParsePage(bytes.NewReader(body), s.url)
}

func hostMatches(host, suffix string) bool {
	host = strings.ToLower(host)
	suffix = strings.ToLower(strings.TrimPrefix(suffix, "."))
	if suffix == "" {
		return true
	}
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}
