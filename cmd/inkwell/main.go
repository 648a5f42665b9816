package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("inkwell command failed")
		return 1
	}
	return 0
}

type rootOptions struct {
	configPath  string
	projectsDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Distraction-free writing appliance for e-ink panels",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.inkwell/config.yaml)")
	root.PersistentFlags().StringVar(&opts.projectsDir, "projects", "", "projects directory (overrides projects_dir)")

	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newJournalCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}
