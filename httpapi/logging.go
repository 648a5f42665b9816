package httpapi

import (
	"net"
	"net/http"
	"time"

	"github.com/iw2rmb/inkwell/internal/logx"
	"pkt.systems/pslog"
)

// statusWriter remembers what a handler sent so the request can be logged.
type statusWriter struct {
	http.ResponseWriter
	status int
	sent   int64
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.sent += int64(n)
	return n, err
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// withRequestLogging logs one line per request, at warn level for 4xx and 5xx.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		log := logx.WithRemote(pslog.Ctx(r.Context()), remoteHost(r.RemoteAddr))
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.code(),
			"bytes", sw.sent,
			"duration_ms", time.Since(began).Milliseconds(),
		}
		if sw.code() >= http.StatusBadRequest {
			log.Warn("transfer request failed", fields...)
			return
		}
		log.Info("transfer request", fields...)
	})
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
