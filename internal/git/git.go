package git

type Git interface {

	// GetCurrentBranch returns the current branch name.
	// Returns "HEAD" if in detached HEAD state.
	GetCurrentBranch() (string, error)

	// GetMainWorktreePath returns the absolute path to the main (primary) worktree.
	// This is the worktree associated with the .git directory, not a linked worktree.
	GetMainWorktreePath() (string, error)

	// GetWorktreeRoot returns the absolute path to the root of the git tree.
	// If not in a git repository, returns ("", nil).
	// Returns an error only if the git command itself fails (e.g., git not installed).
	GetWorktreeRoot() (string, error)

	// BranchExists checks if a branch with the given name already exists.
	BranchExists(branchName string, caseInsensitive bool) (bool, error)

	// CreateBranch creates a new branch from HEAD and switches to it,
	// like `git checkout -b <branchName>`.
	// Will mutate the current git state.
	CreateBranch(branchName string) error
}
