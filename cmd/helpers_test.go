package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmcampanini/branchr/internal/config"
	"github.com/jmcampanini/branchr/internal/git"
	"github.com/spf13/cobra"
)

// mockGit is a test double for git.Git.
type mockGit struct {
	branches      []string
	created       []string
	createErr     error
	currentBranch string
}

var _ git.Git = &mockGit{}

func (m *mockGit) GetCurrentBranch() (string, error) {
	if m.currentBranch == "" {
		return "", errors.New("no current branch")
	}
	return m.currentBranch, nil
}

func (m *mockGit) GetMainWorktreePath() (string, error) { return "/repo", nil }

func (m *mockGit) GetWorktreeRoot() (string, error) { return "/repo", nil }

func (m *mockGit) BranchExists(branchName string, caseInsensitive bool) (bool, error) {
	for _, b := range m.branches {
		if b == branchName || (caseInsensitive && strings.EqualFold(b, branchName)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGit) CreateBranch(branchName string) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, branchName)
	m.branches = append(m.branches, branchName)
	return nil
}

// fakeClipboard records copied text.
type fakeClipboard struct {
	copied []string
}

func (c *fakeClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

// newTestDeps returns deps with default config, a mock git, a fake clipboard
// and a store in a temp directory.
func newTestDeps(t *testing.T) (*deps, *mockGit, *fakeClipboard) {
	t.Helper()
	g := &mockGit{currentBranch: "main", branches: []string{"main"}}
	cb := &fakeClipboard{}
	return &deps{
		cfg:       config.DefaultConfig(),
		clipboard: cb,
		git:       g,
		store:     config.NewFileStore(filepath.Join(t.TempDir(), "branchr.toml")),
	}, g, cb
}

// newTestCmd returns a command whose output goes to the returned buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

// resetFlags restores the package-level flag values after the test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		issueFlags = branchFlags{format: formatText}
		issueKeyFlag, issueTitle, issueURLFlag, issuePageFlag, issueFetch = "", "", "", "", ""
		customFlags = branchFlags{format: formatText}
		linksFormatFlag = formatText
		boardJSONFlag = false
	})
}
