//go:build !linux

package input

import (
	"errors"
	"time"

	"github.com/iw2rmb/inkwell/editor"
	"pkt.systems/pslog"
)

// ErrUnsupported reports that raw keyboards are only read on Linux.
var ErrUnsupported = errors.New("input: evdev keyboards need linux")

// Device is unavailable off Linux.
type Device struct{}

var _ editor.Input = (*Device)(nil)

func Open(path string, logger pslog.Logger) (*Device, error) {
	return nil, ErrUnsupported
}

func (d *Device) Path() string { return "" }

func (d *Device) Wait(time.Duration) (bool, error) { return false, ErrUnsupported }

func (d *Device) Read() ([]editor.Action, error) { return nil, ErrUnsupported }

func (d *Device) Close() error { return nil }
