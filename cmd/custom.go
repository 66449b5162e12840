package cmd

import (
	"errors"
	"strings"

	"github.com/jmcampanini/branchr/internal/naming"
	"github.com/spf13/cobra"
)

var customFlags branchFlags

var customCmd = &cobra.Command{
	Use:   "custom <description...>",
	Short: "Derive a branch name from a free-text description",
	Long: `Derive a branch name for work that has no Jira issue.

The description is slugified and prefixed with branch.custom_branch_prefix
(GOAT-0000 unless configured).

Example:
  branchr custom quick fix for the footer
  branchr custom "Quick fix" --checkout`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCustom,
}

func init() {
	customFlags.register(customCmd)
	rootCmd.AddCommand(customCmd)
}

func runCustom(cmd *cobra.Command, args []string) error {
	return runCustomWithDeps(cmd, args, nil)
}

func runCustomWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	if err := customFlags.validate(); err != nil {
		return err
	}

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return errors.New("description cannot be empty")
	}

	d, err := resolveDeps(d, customFlags.dryRun)
	if err != nil {
		return err
	}

	branch := naming.NewComposer(d.cfg.Branch).CustomBranch(description)
	return deliverBranch(cmd, d, &customFlags, newResult(d, branch, nil))
}
