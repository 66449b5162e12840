package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jmcampanini/branchr/internal/clipboard"
	"github.com/jmcampanini/branchr/internal/config"
	"github.com/jmcampanini/branchr/internal/git"
	"github.com/spf13/cobra"
)

var errNotInRepo = errors.New("branchr must be run inside a git repository for this")

// deps holds the collaborators a command needs. Tests build it directly;
// commands get it from loadDeps.
type deps struct {
	cfg         config.Config
	clipboard   clipboard.Clipboard
	git         git.Git // nil outside a git repository
	sourcePaths []string
	store       config.Store
}

// resolveDeps returns d when set (for testing) or loads from the environment.
func resolveDeps(d *deps, dryRun bool) (*deps, error) {
	if d != nil {
		return d, nil
	}
	return loadDeps(dryRun)
}

// loadDeps discovers and loads config, then creates clients from it.
func loadDeps(dryRun bool) (*deps, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Config is not loaded yet, so discovery uses the default timeout
	gitClient := git.New(dryRun, cwd, config.DefaultGitTimeout)

	worktreeRoot, err := gitClient.GetWorktreeRoot()
	if err != nil {
		return nil, fmt.Errorf("git error: %w", err)
	}

	var mainWorktreePath string
	if worktreeRoot != "" {
		mainWorktreePath, err = gitClient.GetMainWorktreePath()
		if err != nil {
			return nil, fmt.Errorf("failed to get main worktree path: %w", err)
		}
	}

	configPaths := config.ConfigPaths(cwd, worktreeRoot, mainWorktreePath, homeDir)
	loadResult, err := config.NewDefaultLoader().Load(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := config.NewUserStore()
	if err != nil {
		return nil, err
	}

	d := &deps{
		cfg:         loadResult.Config,
		clipboard:   clipboard.NewDefault(),
		sourcePaths: loadResult.SourcePaths,
		store:       store,
	}

	// Recreate the git client using the config timeout
	if worktreeRoot != "" {
		d.git = git.New(dryRun, cwd, loadResult.Config.Git.Timeout)
	}

	return d, nil
}

// isTerminal reports whether w is a character device such as a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// commandContext returns the command's context, or a background context when
// the command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
