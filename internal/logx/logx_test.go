package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"pkt.systems/pslog"
)

func newCaptureLogger(capture *logCapture) pslog.Logger {
	return pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
}

func TestWithDocumentAddsField(t *testing.T) {
	capture := &logCapture{}
	ctx := pslog.ContextWithLogger(context.Background(), newCaptureLogger(capture))
	WithDocument(ctx, "2024-03-09.txt").Info("hello")

	entry := capture.firstEntry(t)
	if entry["doc"] != "2024-03-09.txt" {
		t.Fatalf("expected doc field, got %+v", entry)
	}
}

func TestWithDocumentSkipsMarkedContext(t *testing.T) {
	capture := &logCapture{}
	base := newCaptureLogger(capture).With("doc", "notes.txt")
	ctx := ContextWithDocumentLogger(context.Background(), base, "notes.txt")
	WithDocument(ctx, "notes.txt").Info("hello")

	if n := bytes.Count(capture.buf.Bytes(), []byte(`"doc"`)); n != 1 {
		t.Fatalf("doc field written %d times: %s", n, capture.buf.String())
	}
}

func TestWithDeviceAndRemote(t *testing.T) {
	capture := &logCapture{}
	log := WithRemote(WithDevice(newCaptureLogger(capture), "/dev/input/event3"), "10.0.0.2:5000")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["device"] != "/dev/input/event3" {
		t.Fatalf("expected device field, got %+v", entry)
	}
	if entry["remote"] != "10.0.0.2:5000" {
		t.Fatalf("expected remote field, got %+v", entry)
	}
}

func TestWithDeviceEmpty(t *testing.T) {
	capture := &logCapture{}
	WithDevice(newCaptureLogger(capture), "").Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["device"]; ok {
		t.Fatalf("did not expect device field, got %+v", entry)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
