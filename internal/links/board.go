package links

import "github.com/jmcampanini/branchr/internal/config"

const (
	BoardLabel     = "Board"
	MyStoriesLabel = "My Stories"
)

// Board returns the Jira board link and, when an assignee is configured, the
// board filtered to that assignee. Unset or invalid board URLs yield no links.
func Board(cfg config.JiraConfig) []Link {
	board := []Link{}
	if cfg.BoardURL == "" || !config.IsWebURL(cfg.BoardURL) {
		return board
	}

	board = append(board, Link{Label: BoardLabel, URL: cfg.BoardURL})

	if cfg.AssigneeID != "" {
		mine := cfg.BoardURL + "?assignee=" + cfg.AssigneeID
		if config.IsWebURL(mine) {
			board = append(board, Link{Label: MyStoriesLabel, URL: mine})
		}
	}

	return board
}
