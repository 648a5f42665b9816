//go:build linux

package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/logx"
	"golang.org/x/sys/unix"
	"pkt.systems/pslog"
)

// EVIOCGRAB is _IOW('E', 0x90, int).
const eviocgrab = 0x40044590

// Device reads a grabbed evdev keyboard. It implements editor.Input.
type Device struct {
	path string
	fd   int
	log  pslog.Logger

	tr      Translator
	buf     []byte
	pending []byte
	queue   []editor.Action
}

var _ editor.Input = (*Device)(nil)

// Open opens and grabs the keyboard at path so its keys stop reaching the
// console. logger may be nil.
func Open(path string, logger pslog.Logger) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open keyboard %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(fd, eviocgrab, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("grab keyboard %s: %w", path, err)
	}
	if logger != nil {
		logger = logx.WithDevice(logger, path)
		logger.Info("keyboard grabbed")
	}
	return &Device{path: path, fd: fd, log: logger, buf: make([]byte, 64*EventSize)}, nil
}

func (d *Device) Path() string { return d.path }

// Wait polls the device for up to timeout.
func (d *Device) Wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("poll keyboard: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return false, editor.ErrInputClosed
	}
	return true, nil
}

// Read drains the device and returns the resolved actions in order.
func (d *Device) Read() ([]editor.Action, error) {
	for {
		n, err := unix.Read(d.fd, d.buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				break
			}
			if errors.Is(err, unix.ENODEV) {
				return d.flush(), editor.ErrInputClosed
			}
			return d.flush(), fmt.Errorf("read keyboard: %w", err)
		}
		if n == 0 {
			return d.flush(), editor.ErrInputClosed
		}
		d.pending = append(d.pending, d.buf[:n]...)
		events, used := Decode(d.pending)
		d.pending = append(d.pending[:0], d.pending[used:]...)
		for _, ev := range events {
			if a, ok := d.tr.Feed(ev); ok {
				d.queue = append(d.queue, a)
			}
		}
		if n < len(d.buf) {
			break
		}
	}
	return d.flush(), nil
}

func (d *Device) flush() []editor.Action {
	out := d.queue
	d.queue = nil
	return out
}

// Close releases the grab and the descriptor.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	_ = unix.IoctlSetInt(d.fd, eviocgrab, 0)
	err := unix.Close(d.fd)
	d.fd = -1
	if d.log != nil {
		d.log.Info("keyboard released")
	}
	return err
}
