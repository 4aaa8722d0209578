package observability

import (
	"context"
	"log/slog"
	"net/http"
)

// Audit records a security-relevant event tied to an incoming request. Trace
// correlation comes from the logger's trace-stamp handler.
func Audit(r *http.Request, event string, attrs ...any) {
	base := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get("X-Request-Id"),
	}
	AuditEvent(r.Context(), event, append(base, attrs...)...)
}

// AuditEvent is the request-free variant used below the HTTP layer.
func AuditEvent(ctx context.Context, event string, attrs ...any) {
	slog.InfoContext(ctx, "audit", append([]any{"event", event}, attrs...)...)
}
