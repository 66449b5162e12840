package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileSystem is a test double for FileSystem
type fakeFileSystem struct {
	existingFiles map[string]bool
}

func (f *fakeFileSystem) Exists(path string) bool {
	return f.existingFiles[path]
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	fs := &fakeFileSystem{existingFiles: map[string]bool{}}
	loader := NewLoader(fs)

	result, err := loader.Load([]string{"/nonexistent/branchr.toml"})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), result.Config)
	assert.Equal(t, Record{}, result.Record)
	assert.Empty(t, result.SourcePaths)
}

func TestLoad_SingleFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(*testing.T, Config)
	}{
		{
			name:    "branch section",
			content: "[branch]\nprefix_before = \"feature/\"\nprefix_after = \"_\"\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "feature/", cfg.Branch.PrefixBefore)
				assert.Equal(t, "_", cfg.Branch.PrefixAfter)
				assert.Equal(t, DefaultCustomBranchPrefix, cfg.Branch.CustomBranchPrefix)
			},
		},
		{
			name:    "replace mode",
			content: "[branch]\nreplace_prefix = true\ncustom_prefix = \"team\"\n",
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.Branch.ReplacePrefix)
				assert.Equal(t, "team", cfg.Branch.CustomPrefix)
			},
		},
		{
			name:    "durations as strings",
			content: "[git]\ntimeout = \"2s\"\n\n[jira]\ntimeout = \"1m\"\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 2*time.Second, cfg.Git.Timeout)
				assert.Equal(t, time.Minute, cfg.Jira.Timeout)
			},
		},
		{
			name: "quick links",
			content: `[[quick_links]]
label = "PR"
url = "https://github.com/acme/app/compare/<branch>?expand=1"

[[quick_links]]
label = "CI"
url = "https://ci.example.com/<branch>"
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, []QuickLink{
					{Label: "PR", URL: "https://github.com/acme/app/compare/<branch>?expand=1"},
					{Label: "CI", URL: "https://ci.example.com/<branch>"},
				}, cfg.QuickLinks)
			},
		},
		{
			name:    "unknown keys ignored",
			content: "[branch]\nnew_prefix = \"x/\"\nprefix_before = \"y/\"\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "y/", cfg.Branch.PrefixBefore)
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "branchr.toml", tt.content)

			result, err := NewDefaultLoader().Load([]string{path})
			require.NoError(t, err)
			assert.Equal(t, []string{path}, result.SourcePaths)
			tt.check(t, result.Config)
		})
	}
}

func TestLoad_SequentialOverlay(t *testing.T) {
	tmpDir := t.TempDir()

	low := writeConfig(t, tmpDir, "low.toml", `[branch]
prefix_before = "low/"
custom_branch_prefix = "LOW-0"

[[quick_links]]
label = "Low"
url = "https://low/<branch>"
`)
	high := writeConfig(t, tmpDir, "high.toml", `[branch]
prefix_before = "high/"

[[quick_links]]
label = "High"
url = "https://high/<branch>"
`)

	result, err := NewDefaultLoader().Load([]string{low, high})
	require.NoError(t, err)

	assert.Equal(t, "high/", result.Config.Branch.PrefixBefore)
	assert.Equal(t, "LOW-0", result.Config.Branch.CustomBranchPrefix)
	assert.Equal(t, []QuickLink{{Label: "High", URL: "https://high/<branch>"}}, result.Config.QuickLinks)
}

func TestLoad_ZeroValueOverwrite(t *testing.T) {
	tmpDir := t.TempDir()

	low := writeConfig(t, tmpDir, "low.toml", "[display]\nhide_git_command = true\n")
	high := writeConfig(t, tmpDir, "high.toml", "[display]\nhide_git_command = false\n")

	result, err := NewDefaultLoader().Load([]string{low, high})
	require.NoError(t, err)

	// An explicit false in a higher-priority file replaces true
	assert.False(t, result.Config.Display.HideGitCommand)
	require.NotNil(t, result.Record.Display.HideGitCommand)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "branchr.toml", "[branch\nprefix_before = ")

	_, err := NewDefaultLoader().Load([]string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoad_InvalidConfigValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "negative git timeout",
			content: "[git]\ntimeout = \"-1s\"\n",
			wantErr: "git.timeout cannot be negative",
		},
		{
			name:    "bad board url",
			content: "[jira]\nboard_url = \"ftp://boards\"\n",
			wantErr: "jira.board_url must be an http or https URL",
		},
		{
			name:    "wrong type",
			content: "[branch]\nreplace_prefix = \"yes\"\n",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "branchr.toml", tt.content)

			_, err := NewDefaultLoader().Load([]string{path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ReturnsSourcePaths(t *testing.T) {
	tmpDir := t.TempDir()

	path1 := writeConfig(t, tmpDir, "one.toml", "[branch]\nprefix_before = \"one/\"")
	path2 := writeConfig(t, tmpDir, "two.toml", "[branch]\nprefix_before = \"two/\"")
	path3 := filepath.Join(tmpDir, "nonexistent.toml")

	result, err := NewDefaultLoader().Load([]string{path1, path3, path2})
	require.NoError(t, err)

	// Only existing files should be in source paths
	assert.Equal(t, []string{path1, path2}, result.SourcePaths)
}

func TestLoad_PathIsDirectory(t *testing.T) {
	dirPath := filepath.Join(t.TempDir(), "branchr.toml")
	require.NoError(t, os.Mkdir(dirPath, 0755))

	result, err := NewDefaultLoader().Load([]string{dirPath})
	require.NoError(t, err)

	assert.Empty(t, result.SourcePaths)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestOSFileSystem_Exists(t *testing.T) {
	tmpDir := t.TempDir()

	filePath := writeConfig(t, tmpDir, "test.txt", "test")
	dirPath := filepath.Join(tmpDir, "testdir")
	require.NoError(t, os.Mkdir(dirPath, 0755))

	fs := OSFileSystem{}

	assert.True(t, fs.Exists(filePath))
	assert.False(t, fs.Exists(dirPath))
	assert.False(t, fs.Exists(filepath.Join(tmpDir, "nonexistent")))
}

func TestNewDefaultLoader(t *testing.T) {
	loader := NewDefaultLoader()
	assert.NotNil(t, loader)
	assert.IsType(t, OSFileSystem{}, loader.fs)
}

func TestConfigPaths(t *testing.T) {
	tests := []struct {
		name         string
		cwd          string
		worktreeRoot string
		gitRoot      string
		homeDir      string
		wantContains []string // paths that should be in result
		wantOrder    []string // expected order (subset, for key paths)
		wantMissing  []string
	}{
		{
			name:         "all paths same directory",
			cwd:          "/Users/jim/project",
			worktreeRoot: "/Users/jim/project",
			gitRoot:      "/Users/jim/project",
			homeDir:      "/Users/jim",
			wantContains: []string{
				"/Users/jim/project/branchr.toml",
				"/Users/jim/branchr.toml",
			},
		},
		{
			name:         "worktree in sibling directory",
			cwd:          "/Users/jim/wt-feature",
			worktreeRoot: "/Users/jim/wt-feature",
			gitRoot:      "/Users/jim/project",
			homeDir:      "/Users/jim",
			wantOrder: []string{
				"/Users/jim/branchr.toml",            // lowest priority
				"/Users/jim/project/branchr.toml",    // git root
				"/Users/jim/wt-feature/branchr.toml", // cwd (highest)
			},
		},
		{
			name:         "nested project structure",
			cwd:          "/Users/jim/code/org/project",
			worktreeRoot: "/Users/jim/code/org/project",
			gitRoot:      "/Users/jim/code/org/project",
			homeDir:      "/Users/jim",
			wantOrder: []string{
				"/Users/jim/branchr.toml",
				"/Users/jim/code/branchr.toml",
				"/Users/jim/code/org/branchr.toml",
				"/Users/jim/code/org/project/branchr.toml",
			},
		},
		{
			name:         "cwd differs from worktree root",
			cwd:          "/Users/jim/project/src/subdir",
			worktreeRoot: "/Users/jim/project",
			gitRoot:      "/Users/jim/project",
			homeDir:      "/Users/jim",
			wantOrder: []string{
				"/Users/jim/branchr.toml",
				"/Users/jim/project/branchr.toml",
				"/Users/jim/project/src/subdir/branchr.toml",
			},
		},
		{
			name:         "outside a git repository",
			cwd:          "/Users/jim/notes",
			homeDir:      "/Users/jim",
			wantContains: []string{"/Users/jim/notes/branchr.toml"},
			wantMissing:  []string{"/Users/jim/branchr.toml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := ConfigPaths(tt.cwd, tt.worktreeRoot, tt.gitRoot, tt.homeDir)

			for _, want := range tt.wantContains {
				assert.Contains(t, paths, want, "expected path to be present")
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, paths, missing)
			}

			if len(tt.wantOrder) > 0 {
				var foundOrder []string
				for _, p := range paths {
					for _, expected := range tt.wantOrder {
						if p == expected {
							foundOrder = append(foundOrder, p)
						}
					}
				}
				assert.Equal(t, tt.wantOrder, foundOrder, "paths should be in priority order (lowest to highest)")
			}

			seen := make(map[string]bool)
			for _, p := range paths {
				assert.False(t, seen[p], "duplicate path: %s", p)
				seen[p] = true
			}

			// The user config file always comes first when it can be located
			if userPath, err := UserConfigPath(); err == nil {
				assert.Equal(t, userPath, paths[0])
			}
		})
	}
}
