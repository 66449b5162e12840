package cmd

import (
	"fmt"

	"github.com/jmcampanini/branchr/internal/naming"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview branch names with the current configuration",
	Long: `Preview shows how the configured prefixes shape branch names, using the
sample issue ` + naming.PreviewIssueKey + ` and the segment "` + naming.PreviewSegment + `".

The free-text preview is hidden when display.hide_custom_section is set.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	return runPreviewWithDeps(cmd, nil)
}

func runPreviewWithDeps(cmd *cobra.Command, d *deps) error {
	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	preview := naming.NewComposer(d.cfg.Branch).Preview()

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Issue:  %s\n", preview.Issue); err != nil {
		return err
	}
	if d.cfg.Display.HideCustomSection {
		return nil
	}
	_, err = fmt.Fprintf(out, "Custom: %s\n", preview.Custom)
	return err
}
