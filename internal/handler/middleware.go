package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/employee-pass/internal/metrics"
	"github.com/msomdec/employee-pass/internal/service"
	datastar "github.com/starfederation/datastar-go/datastar"
)

type contextKey string

const (
	adminContextKey     contextKey = "admin"
	requestIDContextKey contextKey = "request_id"
)

const adminCookieName = "admin_token"

// IsAdmin reports whether the request carries a valid admin session.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminContextKey).(bool)
	return ok
}

// RequestID returns the id assigned by RequestLogger, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// OptionalAdmin resolves the admin flag from the session cookie for every
// request. It never blocks.
func OptionalAdmin(gate *service.AdminGate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authenticateRequest(r, gate) {
			r = r.WithContext(context.WithValue(r.Context(), adminContextKey, true))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin protects admin pages. Without a valid session the browser is
// sent to the login gate.
func RequireAdmin(gate *service.AdminGate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authenticateRequest(r, gate) {
			if isDatastar(r) {
				sse := datastar.NewSSE(w, r)
				sse.Redirect(loginPath)
				return
			}
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdminAPI protects JSON endpoints. Returns 401 for unauthenticated requests.
func RequireAdminAPI(gate *service.AdminGate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authenticateRequest(r, gate) {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func authenticateRequest(r *http.Request, gate *service.AdminGate) bool {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil {
		return false
	}
	return gate.ValidateToken(cookie.Value) == nil
}

// SecurityHeaders sets conservative browser security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status. Unwrap keeps
// http.ResponseController (and so SSE flushing) working through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Flush() {
	_ = http.NewResponseController(s.ResponseWriter).Flush()
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogger assigns a request id, echoes it in X-Request-ID and logs one
// line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w}
		r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey, id))
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, pattern, strconv.Itoa(status)).Observe(elapsed.Seconds())

		slog.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"remote", clientIP(r),
		)
	})
}

// clientIP is the peer address without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}
