package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmcampanini/branchr/internal/config"
	"github.com/spf13/cobra"
)

var (
	initForce  bool
	initUser   bool
	initStdout bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter branchr.toml",
	Long: `Init writes a commented branchr.toml that lists every setting with its
default value.

By default the file is written to the current directory, where it applies to
this directory only. Use --user to write the per-user file instead:

  branchr init --user
  branchr init --stdout > team/branchr.toml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	initCmd.Flags().BoolVar(&initUser, "user", false, "Write the per-user config file")
	initCmd.Flags().BoolVar(&initStdout, "stdout", false, "Print the starter config instead of writing it")
	initCmd.MarkFlagsMutuallyExclusive("user", "stdout")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if initStdout {
		_, err := fmt.Fprint(cmd.OutOrStdout(), config.StarterConfig())
		return err
	}

	path, err := initTarget()
	if err != nil {
		return err
	}

	if err := config.WriteStarter(path, initForce); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}

func initTarget() (string, error) {
	if initUser {
		return config.UserConfigPath()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, "branchr.toml"), nil
}
