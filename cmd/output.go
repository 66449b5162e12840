package cmd

import (
	"fmt"

	"github.com/jmcampanini/branchr/internal/issue"
	"github.com/jmcampanini/branchr/internal/links"
	"github.com/jmcampanini/branchr/internal/naming"
	"github.com/jmcampanini/branchr/internal/render"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"

	copyBranch  = "branch"
	copyCommand = "command"
	copyURL     = "url"
)

// branchFlags are the output flags shared by the commands that derive a branch.
type branchFlags struct {
	checkout bool
	copy     string
	dryRun   bool
	format   string
	nameOnly bool
}

func (f *branchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.checkout, "checkout", false, "Create the branch and switch to it")
	cmd.Flags().StringVar(&f.copy, "copy", "", "Copy to the clipboard: branch, command or url")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "With --checkout, log the git command instead of running it")
	cmd.Flags().StringVar(&f.format, "format", formatText, "Output format: text or json")
	cmd.Flags().BoolVar(&f.nameOnly, "name-only", false, "Print only the branch name")
}

func (f *branchFlags) validate() error {
	switch f.format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", f.format)
	}
	switch f.copy {
	case "", copyBranch, copyCommand, copyURL:
	default:
		return fmt.Errorf("unsupported --copy target: %s (supported: branch, command, url)", f.copy)
	}
	return nil
}

// newResult assembles everything derived from a branch name.
func newResult(d *deps, branch string, info *issue.Info) render.Result {
	return render.Result{
		Issue:   info,
		Branch:  branch,
		Command: naming.CheckoutCommand(branch),
		Links:   links.Resolve(d.cfg.QuickLinks, branch),
	}
}

// deliverBranch performs the side effects requested by flags and prints the result.
func deliverBranch(cmd *cobra.Command, d *deps, flags *branchFlags, result render.Result) error {
	if flags.checkout {
		if err := checkoutBranch(d, result.Branch); err != nil {
			return err
		}
	}

	if flags.copy != "" {
		if err := copyResult(cmd, d, flags.copy, result); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.nameOnly:
		_, err := fmt.Fprintln(out, result.Branch)
		return err
	case flags.format == formatJSON:
		return render.JSON(out, result)
	default:
		return render.Text(out, result, render.TextOptions{
			HideCommand: d.cfg.Display.HideGitCommand,
			Hyperlinks:  isTerminal(out),
		})
	}
}

func checkoutBranch(d *deps, branch string) error {
	if d.git == nil {
		return errNotInRepo
	}

	exists, err := d.git.BranchExists(branch, false)
	if err != nil {
		return fmt.Errorf("failed to check if branch exists: %w", err)
	}
	if exists {
		return fmt.Errorf("branch %q already exists; to use it: git checkout %s", branch, branch)
	}

	if err := d.git.CreateBranch(branch); err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

func copyResult(cmd *cobra.Command, d *deps, target string, result render.Result) error {
	var text string
	switch target {
	case copyBranch:
		text = result.Branch
	case copyCommand:
		text = result.Command
	case copyURL:
		if result.Issue == nil || result.Issue.URL == "" {
			return fmt.Errorf("no issue URL to copy")
		}
		text = result.Issue.URL
	}

	if err := d.clipboard.Copy(text); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s to clipboard\n", target)
	return nil
}
