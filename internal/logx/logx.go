package logx

import (
	"context"

	"pkt.systems/pslog"
)

type contextKey int

const (
	documentKey contextKey = iota
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithDocument annotates the context logger with the document name if present.
func WithDocument(ctx context.Context, name string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if name == "" {
		return log
	}
	if current, ok := ctx.Value(documentKey).(string); ok && current == name {
		return log
	}
	return log.With("doc", name)
}

// WithDevice annotates the logger with the keyboard or panel device path.
func WithDevice(log pslog.Logger, path string) pslog.Logger {
	if path != "" {
		log = log.With("device", path)
	}
	return log
}

// WithRemote annotates the logger with the peer of an HTTP request.
func WithRemote(log pslog.Logger, addr string) pslog.Logger {
	if addr != "" {
		log = log.With("remote", addr)
	}
	return log
}

// ContextWithDocument stores the document marker on the context for log de-duplication.
func ContextWithDocument(ctx context.Context, name string) context.Context {
	if ctx == nil || name == "" {
		return ctx
	}
	return context.WithValue(ctx, documentKey, name)
}

// ContextWithDocumentLogger attaches the logger and the document marker to the context.
func ContextWithDocumentLogger(ctx context.Context, log pslog.Logger, name string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithDocument(ctx, name)
}
