package editor

import (
	"errors"
	"image"
	"time"
)

// ErrInputClosed reports that the keyboard source is gone for good.
var ErrInputClosed = errors.New("editor: input closed")

// Input is the keyboard collaborator.
type Input interface {
	// Wait blocks up to timeout and reports whether actions are ready.
	Wait(timeout time.Duration) (bool, error)
	// Read returns the pending actions in arrival order.
	Read() ([]Action, error)
}

// Face selects a font role on the canvas.
type Face uint8

const (
	FaceBody Face = iota
	FaceTitle
	FaceStatus
)

// Canvas is the display collaborator. Coordinates are in canvas units
// (pixels on the panel, cells in the terminal simulator). DrawText takes the
// top-left corner of the line box.
type Canvas interface {
	Size() (width, height int)
	LineHeight() int
	MeasureWidth(text string, face Face) int
	Clear(r image.Rectangle)
	DrawText(x, y int, text string, face Face)
	DrawCursor(x, y, height int)
	// Commit pushes the drawn frame to the device, as a full or partial refresh.
	Commit(full bool) error
}

// Storage is the persistence collaborator. A missing document reports an
// error matching fs.ErrNotExist.
type Storage interface {
	ReadFile(name string) (string, error)
	WriteFile(name, text string) error
}

// Clock supplies wall-clock time to the timers.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
