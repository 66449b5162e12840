package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmcampanini/branchr/internal/config"
	"github.com/jmcampanini/branchr/internal/links"
	"github.com/jmcampanini/branchr/internal/render"
	"github.com/spf13/cobra"
)

var linksFormatFlag string

var linksCmd = &cobra.Command{
	Use:   "links [branch]",
	Short: "Show quick links for a branch",
	Long: `Resolve the configured quick links against a branch name.

Every "<branch>" (any case) in a quick link URL is replaced with the branch
name. Links without a label or url, or that do not resolve to an http or https
URL, are skipped. Without an argument the current git branch is used.

Quick links live in the config file as:

  [[quick_links]]
  label = "PR"
  url = "https://github.com/acme/app/compare/<branch>?expand=1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLinks,
}

var linksAddCmd = &cobra.Command{
	Use:   "add <label> <url>",
	Short: "Add a quick link to the user config",
	Args:  cobra.ExactArgs(2),
	RunE:  runLinksAdd,
}

var linksRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove quick links with this label from the user config",
	Args:  cobra.ExactArgs(1),
	RunE:  runLinksRemove,
}

func init() {
	linksCmd.Flags().StringVar(&linksFormatFlag, "format", formatText, "Output format: text or json")
	linksCmd.AddCommand(linksAddCmd)
	linksCmd.AddCommand(linksRemoveCmd)
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	return runLinksWithDeps(cmd, args, nil)
}

func runLinksWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	if linksFormatFlag != formatText && linksFormatFlag != formatJSON {
		return fmt.Errorf("unsupported format: %s (supported: text, json)", linksFormatFlag)
	}

	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	branch, err := targetBranch(d, args)
	if err != nil {
		return err
	}

	if linksFormatFlag == formatJSON {
		return render.JSON(cmd.OutOrStdout(), newResult(d, branch, nil))
	}
	return render.LinksTable(cmd.OutOrStdout(), links.Resolve(d.cfg.QuickLinks, branch))
}

// targetBranch returns the branch argument, or the current git branch.
func targetBranch(d *deps, args []string) (string, error) {
	if len(args) == 1 {
		branch := strings.TrimSpace(args[0])
		if branch == "" {
			return "", errors.New("branch cannot be empty")
		}
		return branch, nil
	}

	if d.git == nil {
		return "", errNotInRepo
	}
	branch, err := d.git.GetCurrentBranch()
	if err != nil {
		return "", err
	}
	if branch == "HEAD" {
		return "", errors.New("HEAD is detached; pass a branch name")
	}
	return branch, nil
}

func runLinksAdd(cmd *cobra.Command, args []string) error {
	return runLinksAddWithDeps(cmd, args, nil)
}

func runLinksAddWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	link := config.QuickLink{Label: strings.TrimSpace(args[0]), URL: strings.TrimSpace(args[1])}
	if link.Inert() {
		return errors.New("a quick link needs both a label and a url")
	}
	if !config.IsWebURL(links.Expand(link.URL, "branch")) {
		return fmt.Errorf("url %q is not an http or https URL", link.URL)
	}

	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	rec, err := config.Update(commandContext(cmd), d.store, func(r *config.Record) error {
		r.QuickLinks = append(r.QuickLinks, link)
		return nil
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d quick links)\n", link.Label, len(rec.QuickLinks))
	return err
}

func runLinksRemove(cmd *cobra.Command, args []string) error {
	return runLinksRemoveWithDeps(cmd, args, nil)
}

func runLinksRemoveWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	label := strings.TrimSpace(args[0])

	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	removed := 0
	rec, err := config.Update(commandContext(cmd), d.store, func(r *config.Record) error {
		kept := []config.QuickLink{}
		for _, link := range r.QuickLinks {
			if strings.TrimSpace(link.Label) == label {
				removed++
				continue
			}
			kept = append(kept, link)
		}
		if removed == 0 {
			return fmt.Errorf("no quick link labelled %q in the user config", label)
		}
		r.QuickLinks = kept
		return nil
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %q (%d quick links left)\n", removed, label, len(rec.QuickLinks))
	return err
}
