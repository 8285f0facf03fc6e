package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"noctopo/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `init writes the default configuration to --config, or to
$XDG_CONFIG_HOME/noctopo/config.yaml when no path is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check %s: %w", path, err)
	}

	cfg := config.DefaultConfig()
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if panelID != "" {
		cfg.Panel.ID = panelID
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
