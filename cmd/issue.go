package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/jmcampanini/branchr/internal/issue"
	"github.com/jmcampanini/branchr/internal/naming"
	"github.com/spf13/cobra"
)

// cookieEnvVar holds an optional Cookie header for fetching issue pages.
const cookieEnvVar = "BRANCHR_JIRA_COOKIE"

var (
	issueFlags    branchFlags
	issueKeyFlag  string
	issueTitle    string
	issueURLFlag  string
	issuePageFlag string
	issueFetch    string
)

var issueCmd = &cobra.Command{
	Use:   "issue [key [title...]]",
	Short: "Derive a branch name from a Jira issue",
	Long: `Derive a branch name, checkout command and quick links from a Jira issue.

The issue can be given directly, read from a saved issue page, or fetched:

  branchr issue GOAT-123 "Add login flow"
  branchr issue --page issue.html
  pbpaste | branchr issue --page -
  branchr issue --fetch https://example.atlassian.net/browse/GOAT-123

Fetched pages must live under jira.host_suffix. Set ` + cookieEnvVar + ` to send
a session cookie with the request.`,
	Args: cobra.MaximumNArgs(64),
	RunE: runIssue,
}

func init() {
	issueFlags.register(issueCmd)
	issueCmd.Flags().StringVar(&issueKeyFlag, "key", "", "Issue key (e.g., GOAT-123)")
	issueCmd.Flags().StringVar(&issueTitle, "title", "", "Issue title")
	issueCmd.Flags().StringVar(&issueURLFlag, "url", "", "Issue URL, shown and copyable with --copy url")
	issueCmd.Flags().StringVar(&issuePageFlag, "page", "", "Read a saved issue page (\"-\" for stdin)")
	issueCmd.Flags().StringVar(&issueFetch, "fetch", "", "Fetch the issue page at this URL")
	issueCmd.MarkFlagsMutuallyExclusive("page", "fetch")
	rootCmd.AddCommand(issueCmd)
}

func runIssue(cmd *cobra.Command, args []string) error {
	return runIssueWithDeps(cmd, args, nil)
}

func runIssueWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	if err := issueFlags.validate(); err != nil {
		return err
	}

	d, err := resolveDeps(d, issueFlags.dryRun)
	if err != nil {
		return err
	}

	source, err := issueSource(cmd, d, args)
	if err != nil {
		return err
	}

	info, err := source.Fetch(commandContext(cmd))
	if err != nil {
		if errors.Is(err, issue.ErrNotFound) {
			return fmt.Errorf("%w: give a key and title, --page or --fetch", err)
		}
		return err
	}

	branch := naming.NewComposer(d.cfg.Branch).IssueBranch(info.IssueKey, info.StoryName)
	return deliverBranch(cmd, d, &issueFlags, newResult(d, branch, &info))
}

// issueSource picks the source from the flags: --fetch, then --page, then the
// positional key and title (or --key and --title).
func issueSource(cmd *cobra.Command, d *deps, args []string) (issue.Source, error) {
	switch {
	case issueFetch != "":
		if len(args) > 0 {
			return nil, errors.New("--fetch does not take a key or title")
		}
		header := http.Header{}
		if cookie := os.Getenv(cookieEnvVar); cookie != "" {
			header.Set("Cookie", cookie)
		}
		return issue.NewHTTPSource(issueFetch, d.cfg.Jira.HostSuffix, d.cfg.Jira.Timeout, header), nil

	case issuePageFlag != "":
		if len(args) > 0 {
			return nil, errors.New("--page does not take a key or title")
		}
		return issue.PageFile{Path: issuePageFlag, URL: issueURLFlag, Stdin: cmd.InOrStdin()}, nil
	}

	key, title := issueKeyFlag, issueTitle
	if len(args) > 0 {
		if key != "" {
			return nil, errors.New("give the key either as an argument or with --key")
		}
		key = args[0]
	}
	if len(args) > 1 {
		if title != "" {
			return nil, errors.New("give the title either as arguments or with --title")
		}
		title = strings.Join(args[1:], " ")
	}

	return issue.Manual{Key: key, Title: title, URL: issueURLFlag}, nil
}
