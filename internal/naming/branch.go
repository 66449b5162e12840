package naming

import (
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/jmcampanini/branchr/internal/config"
)

const (
	// ReplacePrefixPlaceholder is used as the prefix when replace mode is on but
	// no custom prefix is configured.
	ReplacePrefixPlaceholder = "custom-prefix"

	// PreviewIssueKey and PreviewSegment build the sample names shown by Preview.
	PreviewIssueKey = "GOAT-8074"
	PreviewSegment  = "example-branch-name"
)

// Composer creates branch names from issue metadata or free text.
type Composer struct {
	cfg config.BranchConfig
	log *clog.Logger
}

// NewComposer creates a composer from branch config.
func NewComposer(cfg config.BranchConfig) *Composer {
	return &Composer{
		cfg: cfg,
		log: clog.Default().WithPrefix("naming"),
	}
}

// IssueBranch returns "<prefix>-<slug>" for an issue.
//
// In replace mode the prefix is the custom prefix, used verbatim. Otherwise it
// is PrefixBefore + upper-cased issue key + PrefixAfter. An empty slug still
// yields the trailing dash.
func (c *Composer) IssueBranch(issueKey, storyName string) string {
	prefix, placeholder := c.issuePrefix(issueKey)
	if placeholder {
		c.log.Warn("replace_prefix is enabled without custom_prefix, using placeholder",
			"prefix", ReplacePrefixPlaceholder, "issueKey", issueKey)
	}

	branch := prefix + "-" + Slugify(storyName)
	c.log.Debug("Composed issue branch", "issueKey", issueKey, "branch", branch)
	return branch
}

// CustomBranch returns "<custom branch prefix>-<slug>" for a free-text description.
func (c *Composer) CustomBranch(description string) string {
	branch := c.customPrefix() + "-" + Slugify(description)
	c.log.Debug("Composed custom branch", "branch", branch)
	return branch
}

// Preview holds sample branch names that show the effect of the configuration.
type Preview struct {
	Issue  string
	Custom string
}

// Preview renders the configured prefixes against a sample issue. It never
// warns about the placeholder prefix since showing it is the point.
func (c *Composer) Preview() Preview {
	prefix, _ := c.issuePrefix(PreviewIssueKey)
	return Preview{
		Issue:  prefix + "-" + PreviewSegment,
		Custom: c.customPrefix() + "-" + PreviewSegment,
	}
}

// issuePrefix selects the prefix for an issue branch. placeholder is true when
// the configuration left replace mode without a prefix.
func (c *Composer) issuePrefix(issueKey string) (prefix string, placeholder bool) {
	if c.cfg.ReplacePrefix {
		if c.cfg.CustomPrefix != "" {
			return c.cfg.CustomPrefix, false
		}
		return ReplacePrefixPlaceholder, true
	}
	return c.cfg.PrefixBefore + strings.ToUpper(issueKey) + c.cfg.PrefixAfter, false
}

func (c *Composer) customPrefix() string {
	if c.cfg.CustomBranchPrefix != "" {
		return c.cfg.CustomBranchPrefix
	}
	return config.DefaultCustomBranchPrefix
}

// CheckoutCommand returns the git command that creates and switches to branch.
// The branch name is not quoted.
func CheckoutCommand(branch string) string {
	return "git checkout -b " + branch
}
