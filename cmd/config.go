package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/jmcampanini/branchr/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print current configuration in TOML format",
	Long: `Print the current effective configuration in TOML format.

This outputs the merged configuration (defaults with any user overrides applied).
The output can be redirected to a file to create a new configuration:

  branchr config > branchr.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the user config",
	Long: `Set a value in the user config file.

Keys:
  ` + strings.Join(config.Keys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a value from the user config so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the user config file and the files loaded for this directory",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	return runConfigWithDeps(cmd, nil)
}

func runConfigWithDeps(cmd *cobra.Command, d *deps) error {
	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(d.cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), buf.String())
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	return runConfigSetWithDeps(cmd, args, nil)
}

func runConfigSetWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	rec, err := config.Update(commandContext(cmd), d.store, func(r *config.Record) error {
		return r.Set(key, value)
	})
	if err != nil {
		return err
	}

	for _, w := range config.ApplyDefaults(rec).Warnings() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	return err
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	return runConfigUnsetWithDeps(cmd, args, nil)
}

func runConfigUnsetWithDeps(cmd *cobra.Command, args []string, d *deps) error {
	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	key := args[0]
	if _, err := config.Update(commandContext(cmd), d.store, func(r *config.Record) error {
		return r.Unset(key)
	}); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	return runConfigPathWithDeps(cmd, nil)
}

func runConfigPathWithDeps(cmd *cobra.Command, d *deps) error {
	d, err := resolveDeps(d, false)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if fileStore, ok := d.store.(*config.FileStore); ok {
		sb.WriteString(fmt.Sprintf("User config: %s\n", fileStore.Path))
	}

	if len(d.sourcePaths) == 0 {
		sb.WriteString("No config files loaded; using defaults.\n")
	} else {
		sb.WriteString("Loaded (lowest to highest priority):\n")
		for _, path := range d.sourcePaths {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", path, modifiedAgo(path)))
		}
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}

// modifiedAgo describes when path last changed, e.g. "modified 3 days ago".
func modifiedAgo(path string) string {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "missing"
	}
	if err != nil {
		return "unreadable"
	}
	return "modified " + humanize.Time(info.ModTime())
}
