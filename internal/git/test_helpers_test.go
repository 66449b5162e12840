package git

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

const testTimeout = 30 * time.Second

// newTestGitCli creates a GitCli instance suitable for unit testing.
// The logger discards output and workingDir is set to a placeholder.
func newTestGitCli() *GitCli {
	return &GitCli{
		dryRun:     false,
		log:        clog.New(io.Discard),
		workingDir: "/nonexistent",
	}
}

// testRepo provides a temporary git repository for integration tests.
type testRepo struct {
	Git     *GitCli
	rootDir string
	t       *testing.T
}

// newTestRepo creates an initialized git repository in a temp directory.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	return initTestRepo(t, false)
}

// newTestRepoWithDryRun creates an initialized git repository with dry-run mode enabled.
func newTestRepoWithDryRun(t *testing.T) *testRepo {
	t.Helper()
	return initTestRepo(t, true)
}

func initTestRepo(t *testing.T, dryRun bool) *testRepo {
	t.Helper()

	dir := t.TempDir()

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	return &testRepo{
		Git:     New(dryRun, dir, testTimeout).(*GitCli),
		rootDir: dir,
		t:       t,
	}
}

// commit creates a new commit and returns the short SHA.
func (r *testRepo) commit(message string) string {
	r.t.Helper()
	filename := filepath.Join(r.rootDir, "file.txt")
	appendToFile(r.t, filename, message+"\n")
	runGit(r.t, r.rootDir, "add", "-A")
	runGit(r.t, r.rootDir, "commit", "-m", message)
	return r.shortSHA("HEAD")
}

// createBranch creates a new branch at current HEAD.
func (r *testRepo) createBranch(name string) {
	r.t.Helper()
	runGit(r.t, r.rootDir, "branch", name)
}

// checkout switches to a branch or ref.
func (r *testRepo) checkout(ref string) {
	r.t.Helper()
	runGit(r.t, r.rootDir, "checkout", ref)
}

// checkoutDetached checks out a commit in detached HEAD state.
func (r *testRepo) checkoutDetached(ref string) {
	r.t.Helper()
	runGit(r.t, r.rootDir, "checkout", "--detach", ref)
}

// createWorktree creates a worktree for an existing branch.
func (r *testRepo) createWorktree(path, branch string) {
	r.t.Helper()
	runGit(r.t, r.rootDir, "worktree", "add", path, branch)
}

// shortSHA returns the short SHA for a ref.
func (r *testRepo) shortSHA(ref string) string {
	r.t.Helper()
	return strings.TrimSpace(runGit(r.t, r.rootDir, "rev-parse", "--short", ref))
}

// path returns the root directory of the test repo (with symlinks resolved).
func (r *testRepo) path() string {
	resolved, err := filepath.EvalSymlinks(r.rootDir)
	if err != nil {
		return r.rootDir
	}
	return resolved
}

// runGit executes a git command and returns stdout.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(t, err, "git %v failed: %s", args, stderr.String())
	return stdout.String()
}

// appendToFile appends content to a file, creating it if necessary.
func appendToFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	_, err = f.WriteString(content)
	require.NoError(t, err)
}

// resolvePath resolves symlinks in a path (useful for macOS /var -> /private/var).
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
