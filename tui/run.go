package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iw2rmb/inkwell/editor"
	"pkt.systems/pslog"
)

// Options configure the simulator.
type Options struct {
	// Cols and Rows size the simulated panel in cells.
	Cols, Rows int
	Style      *Style
	// ProgramOptions are passed to tea.NewProgram after the defaults.
	ProgramOptions []tea.ProgramOption
	Logger         pslog.Logger
}

const (
	defaultCols = 60
	defaultRows = 18
)

// simConfig swaps the panel's pixel geometry for the cell geometry.
func simConfig(cfg editor.Config) editor.Config {
	cfg.Geometry = Geometry()
	return cfg
}

// Run edits name in the terminal until the session ends. The session's exit
// flush always completes before Run returns.
func Run(ctx context.Context, name string, cfg editor.Config, storage editor.Storage, opts Options) (editor.Result, error) {
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}
	cfg = simConfig(cfg)

	var p *tea.Program
	queue := NewQueue()
	canvas := NewCanvas(cols, rows, func(f Frame) { p.Send(f) })
	onChange := cfg.Hooks.OnChange
	cfg.Hooks.OnChange = func(ev editor.ChangeEvent) {
		if onChange != nil {
			onChange(ev)
		}
		p.Send(ev)
	}

	sess, err := editor.NewSession(ctx, name, cfg, editor.Deps{
		Input:   queue,
		Canvas:  canvas,
		Storage: storage,
		Logger:  opts.Logger,
	})
	if err != nil {
		return editor.Result{}, err
	}

	popts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts.ProgramOptions...)
	p = tea.NewProgram(NewModel(queue, style), popts...)

	type outcome struct {
		res editor.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := sess.Run(ctx)
		done <- outcome{res, err}
		p.Send(doneMsg{res: res, err: err})
	}()

	_, perr := p.Run()
	// A program that quit on its own leaves the session waiting for keys.
	queue.Close()
	out := <-done
	if perr != nil && !errors.Is(perr, tea.ErrProgramKilled) {
		return out.res, errors.Join(out.err, perr)
	}
	return out.res, out.err
}
