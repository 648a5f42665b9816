package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/httpapi"
	"github.com/iw2rmb/inkwell/input"
	"github.com/iw2rmb/inkwell/internal/appconfig"
	"github.com/iw2rmb/inkwell/internal/logx"
	"github.com/iw2rmb/inkwell/journal"
	"github.com/iw2rmb/inkwell/panel"
	"github.com/iw2rmb/inkwell/store"
	"github.com/iw2rmb/inkwell/tui"
	"pkt.systems/pslog"
)

type editOptions struct {
	sim      bool
	journal  bool
	device   string
	output   string
	httpAddr string
	noHTTP   bool
	logFile  string
}

func newEditCmd(root *rootOptions) *cobra.Command {
	opts := &editOptions{}
	cmd := &cobra.Command{
		Use:   "edit [name]",
		Short: "Edit a document (today's journal when no name is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if opts.journal && name != "" {
				return fmt.Errorf("--journal takes no document name")
			}
			return runEdit(cmd, root, opts, name)
		},
	}
	addEditFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.journal, "journal", "j", false, "open today's journal")
	return cmd
}

func newJournalCmd(root *rootOptions) *cobra.Command {
	opts := &editOptions{}
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Open today's journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, root, opts, "")
		},
	}
	addEditFlags(cmd, opts)
	return cmd
}

func addEditFlags(cmd *cobra.Command, opts *editOptions) {
	cmd.Flags().BoolVar(&opts.sim, "sim", false, "edit in the terminal instead of on the panel")
	cmd.Flags().StringVar(&opts.device, "keyboard", "", "evdev keyboard device (overrides keyboard.device)")
	cmd.Flags().StringVarP(&opts.output, "png", "o", "", "PNG frame output (overrides display.output)")
	cmd.Flags().StringVar(&opts.httpAddr, "http", "", "transfer server address (overrides http.addr)")
	cmd.Flags().BoolVar(&opts.noHTTP, "no-http", false, "do not start the transfer server")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "log to this file (terminal mode logs nowhere by default)")
}

// resolveName maps the edit argument to a document name. An empty argument
// is today's journal and a bare name gets the .txt extension.
func resolveName(arg string, now time.Time) string {
	if arg == "" {
		return journal.DailyName(now)
	}
	if path.Ext(arg) == "" {
		return arg + ".txt"
	}
	return arg
}

func runEdit(cmd *cobra.Command, root *rootOptions, opts *editOptions, arg string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	applyEditOverrides(&cfg, opts)

	logger := pslog.Ctx(ctx)
	if opts.sim || opts.logFile != "" {
		w, closeLog, err := openLogWriter(opts.logFile)
		if err != nil {
			return err
		}
		defer closeLog()
		logger = pslog.NewWithOptions(w, pslog.Options{Mode: pslog.ModeStructured, NoColor: true, MinLevel: pslog.InfoLevel})
		ctx = pslog.ContextWithLogger(ctx, logger)
		log.SetOutput(pslog.LogLogger(logger).Writer())
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	now := time.Now()
	if _, err := st.EnsureDefaults(now); err != nil {
		return err
	}

	name := resolveName(arg, now)
	if _, err := st.Path(name); err != nil {
		return err
	}
	sessCfg := cfg.Session()
	if journal.IsDaily(name) {
		sessCfg.Hooks = journal.Hooks(st)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	serverDone := startTransferServer(ctx, cfg.HTTP.Addr, st)

	logger = logx.WithDocument(ctx, name)
	ctx = logx.ContextWithDocumentLogger(ctx, logger, name)

	var res editor.Result
	if opts.sim {
		res, err = tui.Run(ctx, name, sessCfg, st, tui.Options{Logger: logger})
	} else {
		res, err = runPanel(ctx, cfg, name, sessCfg, st, logger)
	}
	cancel()
	<-serverDone

	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words (%s)\n", name, res.Words, res.Reason)
	return nil
}

func applyEditOverrides(cfg *appconfig.Config, opts *editOptions) {
	if opts.device != "" {
		cfg.Keyboard.Device = opts.device
	}
	if opts.output != "" {
		cfg.Display.Output = opts.output
	}
	if opts.httpAddr != "" {
		cfg.HTTP.Addr = opts.httpAddr
	}
	if opts.noHTTP {
		cfg.HTTP.Addr = ""
	}
}

func openLogWriter(file string) (io.Writer, func(), error) {
	if file == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// startTransferServer serves st until ctx ends. The returned channel closes
// once the server has shut down.
func startTransferServer(ctx context.Context, addr string, st *store.Store) <-chan struct{} {
	done := make(chan struct{})
	if addr == "" {
		close(done)
		return done
	}
	srv := httpapi.NewServer(httpapi.Config{Addr: addr}, st)
	go func() {
		defer close(done)
		if err := httpapi.ListenAndServe(ctx, addr, srv.Handler()); err != nil {
			pslog.Ctx(ctx).Warn("transfer server stopped", "err", err)
		}
	}()
	return done
}

func runPanel(ctx context.Context, cfg appconfig.Config, name string, sessCfg editor.Config, st *store.Store, logger pslog.Logger) (editor.Result, error) {
	devPath := cfg.Keyboard.Device
	if devPath == "" {
		found, err := input.Discover(input.ByIDDir)
		if err != nil {
			return editor.Result{}, err
		}
		devPath = found
	}
	kbd, err := input.Open(devPath, logger)
	if err != nil {
		return editor.Result{}, err
	}
	defer func() {
		if err := kbd.Close(); err != nil {
			logger.Warn("keyboard release failed", "err", err)
		}
	}()

	driver := panel.NewPNGDriver(cfg.Display.Output, logger)
	canvas := panel.NewCanvas(cfg.Panel(), driver)
	sess, err := editor.NewSession(ctx, name, sessCfg, editor.Deps{
		Input:   kbd,
		Canvas:  canvas,
		Storage: st,
		Logger:  logger,
	})
	if err != nil {
		return editor.Result{}, err
	}
	res, err := sess.Run(ctx)
	if errors.Is(err, editor.ErrInputClosed) {
		logger.Warn("keyboard lost", "device", devPath)
	}
	if res.Reason == editor.ExitIdle {
		if err := driver.Sleep(); err != nil {
			logger.Warn("display sleep failed", "err", err)
		}
	}
	return res, err
}
