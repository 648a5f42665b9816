package panel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"pkt.systems/pslog"
)

// Driver pushes black and white frames to a display.
type Driver interface {
	// Full redraws the whole panel, clearing ghosting.
	Full(frame *image.Gray) error
	// Partial updates the panel without the full flash.
	Partial(frame *image.Gray) error
	// Sleep powers the panel down. The next refresh wakes it.
	Sleep() error
}

// PNGDriver writes every committed frame to a PNG file.
type PNGDriver struct {
	path string
	log  pslog.Logger

	mu       sync.Mutex
	frames   int
	sleeping bool
}

var _ Driver = (*PNGDriver)(nil)

// NewPNGDriver writes frames to path. logger may be nil.
func NewPNGDriver(path string, logger pslog.Logger) *PNGDriver {
	if logger != nil {
		logger = logger.With("output", path)
	}
	return &PNGDriver{path: path, log: logger}
}

func (d *PNGDriver) Full(frame *image.Gray) error {
	return d.write(frame, "full")
}

func (d *PNGDriver) Partial(frame *image.Gray) error {
	return d.write(frame, "partial")
}

func (d *PNGDriver) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sleeping {
		return nil
	}
	d.sleeping = true
	if d.log != nil {
		d.log.Info("display sleeping")
	}
	return nil
}

// Frames is the number of frames written so far.
func (d *PNGDriver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Sleeping reports whether Sleep was called since the last frame.
func (d *PNGDriver) Sleeping() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sleeping
}

func (d *PNGDriver) write(frame *image.Gray, mode string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sleeping {
		d.sleeping = false
		if d.log != nil {
			d.log.Debug("display woken")
		}
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("png output: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("png output: %w", err)
	}
	if err := png.Encode(tmp, frame); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("png output: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("png output: %w", err)
	}
	d.frames++
	if d.log != nil {
		d.log.Trace("frame written", "mode", mode, "frame", d.frames)
	}
	return nil
}
