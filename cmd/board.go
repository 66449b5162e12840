package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmcampanini/branchr/internal/links"
	"github.com/jmcampanini/branchr/internal/render"
	"github.com/spf13/cobra"
)

var boardJSONFlag bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the Jira board links",
	Long: `Show the configured Jira board and, when jira.assignee_id is set, the board
filtered to your stories.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&boardJSONFlag, "json", false, "Output as JSON")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	return runBoardWithDeps(cmd, nil)
}

func runBoardWithDeps(cmd *cobra.Command, d *deps) error {
	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	board := links.Board(d.cfg.Jira)
	if len(board) == 0 {
		return errors.New("jira.board_url is not configured; set it with: branchr config set jira.board_url <url>")
	}

	out := cmd.OutOrStdout()
	if boardJSONFlag {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	}

	hyperlinks := isTerminal(out)
	for _, link := range board {
		if _, err := fmt.Fprintln(out, render.LinkLine(link, hyperlinks)); err != nil {
			return err
		}
	}
	return nil
}
