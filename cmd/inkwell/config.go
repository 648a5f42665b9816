package main

import (
	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/internal/appconfig"
	"github.com/iw2rmb/inkwell/store"
	"pkt.systems/pslog"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	var overwrite bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := appconfig.WriteDefault(opts.configPath, overwrite)
			if err != nil {
				return err
			}
			pslog.Ctx(cmd.Context()).Info("config written", "path", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&overwrite, "force", false, "overwrite an existing config")
	cmd.AddCommand(initCmd)
	return cmd
}

// loadConfig reads the config file and applies the root flag overrides.
func loadConfig(opts *rootOptions) (appconfig.Config, error) {
	cfg, err := appconfig.Load(opts.configPath)
	if err != nil {
		return appconfig.Config{}, err
	}
	if opts.projectsDir != "" {
		cfg.ProjectsDir = opts.projectsDir
	}
	return cfg, nil
}

func openStore(cfg appconfig.Config, logger pslog.Logger) (*store.Store, error) {
	return store.New(cfg.ProjectsDir, logger)
}
