package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "branchr"
	configFileName = "branchr.toml"
)

// UserConfigPath returns the per-user config file, the one a Store writes to
// (~/.config/branchr/branchr.toml on Linux).
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// ConfigPaths returns ordered list of config file paths to check.
// Paths are ordered from lowest to highest priority, so that when decoded
// sequentially, each subsequent file overrides values from previous files.
//
// Order (lowest to highest priority):
//  1. File in the user config directory (~/.config/branchr/branchr.toml)
//  2. Files walking up from git root toward home directory
//  3. File in git repository root (main worktree)
//  4. File in current worktree root (if different from git root)
//  5. File in current working directory (if different from worktree root)
//
// branchr also runs outside git repositories, in which case worktreeRoot and
// gitRoot are empty and only the user file and cwd are considered.
func ConfigPaths(cwd, worktreeRoot, gitRoot, homeDir string) []string {
	var paths []string
	seen := make(map[string]bool)

	addFile := func(path string) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		paths = append(paths, path)
	}
	addDir := func(dir string) {
		if dir == "" {
			return
		}
		addFile(filepath.Join(dir, configFileName))
	}

	if userPath, err := UserConfigPath(); err == nil {
		addFile(userPath)
	}

	if gitRoot != "" && homeDir != "" {
		// Collect ancestors from gitRoot's parent up to home
		var ancestors []string
		current := filepath.Dir(gitRoot)
		for current != "" && len(current) >= len(homeDir) {
			ancestors = append(ancestors, current)
			if current == homeDir {
				break
			}
			parent := filepath.Dir(current)
			if parent == current {
				break // reached filesystem root
			}
			current = parent
		}

		// Add in reverse order: home first (lowest priority), closest to gitRoot last
		for i := len(ancestors) - 1; i >= 0; i-- {
			addDir(ancestors[i])
		}
	}

	addDir(gitRoot)
	addDir(worktreeRoot)
	addDir(cwd)

	return paths
}
