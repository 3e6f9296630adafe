package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DevDeepakBhattarai/file-forge/internal/config"
	"github.com/DevDeepakBhattarai/file-forge/internal/paths"
)

var (
	homeDir    string
	outputJSON bool
	noProgress bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileforge",
		Short: "Convert files with the tools already on your machine",
	}

	cmd.PersistentFlags().StringVar(&homeDir, "home", "", "Override the fileforge home directory (default ~/.fileforge)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable interactive progress output")

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newFormatsCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCleanCmd())

	return cmd
}

// resolveAppConfig loads the app paths, the .env overrides and the config
// file in the order every command needs them. Variables already present in
// the environment win over .env entries.
func resolveAppConfig() (paths.AppPaths, config.Config, error) {
	pp, err := paths.Resolve(homeDir)
	if err != nil {
		return paths.AppPaths{}, config.Config{}, err
	}
	if err := config.LoadEnv(pp.EnvFile); err != nil {
		return pp, config.Config{}, err
	}
	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return pp, cfg, err
	}
	return pp, cfg, nil
}
