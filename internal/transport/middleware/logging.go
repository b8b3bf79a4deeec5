package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// LoggingMiddleware writes one line per handled request. Request and
// response bodies are never logged: they carry profile data, and a
// suggestion answer can be large.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", ww.BytesWritten(),
			}
			if traceID := w.Header().Get(TraceHeader); traceID != "" {
				attrs = append(attrs, "trace_id", traceID)
			}
			if reqID := chiMiddleware.GetReqID(r.Context()); reqID != "" {
				attrs = append(attrs, "request_id", reqID)
			}
			attrs = append(attrs, routeAttrs(r)...)

			logger.Log(r.Context(), levelFor(status), "request handled", attrs...)
		})
	}
}

// routeAttrs names the matched route and its ids. It must run after the
// router has matched, when chi has filled the route context.
func routeAttrs(r *http.Request) []any {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	pattern := rctx.RoutePattern()
	if pattern == "" {
		return nil
	}

	attrs := []any{"route", pattern}
	if id := rctx.URLParam("id"); id != "" {
		switch {
		case strings.Contains(pattern, "/sessions/"):
			attrs = append(attrs, "session_id", id)
		case strings.Contains(pattern, "/users/"):
			attrs = append(attrs, "user_id", id)
		}
	}
	if systemID := rctx.URLParam("systemId"); systemID != "" {
		attrs = append(attrs, "system_id", systemID)
	}
	return attrs
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
