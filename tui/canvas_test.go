package tui

import (
	"image"
	"reflect"
	"testing"

	"github.com/iw2rmb/inkwell/editor"
)

func TestCanvasMeasureWidth(t *testing.T) {
	c := NewCanvas(10, 3, nil)
	if got := c.MeasureWidth("abc", editor.FaceBody); got != 3 {
		t.Fatalf("ascii width: got %d, want 3", got)
	}
	if got := c.MeasureWidth("日本", editor.FaceBody); got != 4 {
		t.Fatalf("wide width: got %d, want 4", got)
	}
	if c.LineHeight() != 1 {
		t.Fatalf("line height: got %d, want 1", c.LineHeight())
	}
}

func TestCanvasDrawAndCommit(t *testing.T) {
	var frames []Frame
	c := NewCanvas(8, 2, func(f Frame) { frames = append(frames, f) })

	c.DrawText(1, 0, "hi 日", editor.FaceBody)
	c.DrawText(0, 1, "overflowing", editor.FaceStatus)
	c.DrawCursor(3, 0, 1)
	if err := c.Commit(true); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("frames: got %d, want 1", len(frames))
	}
	f := frames[0]
	want := []string{" hi 日", "overflow"}
	if got := f.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines: got %q, want %q", got, want)
	}
	if !f.Full || !f.HasCursor || f.Cursor != image.Pt(3, 0) {
		t.Fatalf("frame meta: got full=%v cursor=%v/%v", f.Full, f.Cursor, f.HasCursor)
	}
	if f.Cells[1][0].Face != editor.FaceStatus {
		t.Fatalf("face: got %v, want status", f.Cells[1][0].Face)
	}

	c.Clear(image.Rect(0, 0, 8, 1))
	_ = c.Commit(false)
	f = frames[1]
	if f.Lines()[0] != "" || f.HasCursor || f.Full {
		t.Fatalf("after clear: got %q cursor=%v full=%v", f.Lines()[0], f.HasCursor, f.Full)
	}
	if f.Seq != 2 {
		t.Fatalf("seq: got %d, want 2", f.Seq)
	}
}

func TestCanvasWideClusterDoesNotSplit(t *testing.T) {
	c := NewCanvas(3, 1, nil)
	c.DrawText(0, 0, "a日日", editor.FaceBody)
	got := c.snapshot(false).Lines()[0]
	if got != "a日" {
		t.Fatalf("line: got %q, want %q", got, "a日")
	}
}
