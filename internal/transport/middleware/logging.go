package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/attendance-management/pkg/logger"
)

const redacted = "[FILTERED]"

// redactedKeys are matched as substrings of lower-cased header and JSON keys.
// Employee ids are personal data and stay out of the logs too.
var redactedKeys = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"cookie",
	"credential",
	"employeeid",
	"userid",
}

// maxLoggedBody caps how much of a body is buffered for debug logging.
const maxLoggedBody = 4 << 10

// LoggingMiddleware logs one line per request and one per response. Bodies
// are only attached at debug level, after redaction.
func LoggingMiddleware(lg *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			l := logger.FromOr(r.Context(), lg)
			debug := l.Enabled(r.Context(), slog.LevelDebug)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			}
			if debug {
				attrs = append(attrs, "headers", redactHeaders(r.Header), "body", redactBody(peekBody(r)))
			}
			l.Info("incoming request", attrs...)

			rec := &statusRecorder{ResponseWriter: w, capture: debug}
			next.ServeHTTP(rec, r)

			logResponse(r.Context(), l, rec, time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	size    int
	capture bool
	body    bytes.Buffer
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	if rw.capture && rw.body.Len() < maxLoggedBody {
		rw.body.Write(b)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func peekBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(b), r.Body))
	return b
}

func logResponse(ctx context.Context, l *slog.Logger, rw *statusRecorder, d time.Duration) {
	status := rw.status
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	attrs := []any{
		"status_code", status,
		"duration_ms", d.Milliseconds(),
		"response_size", rw.size,
	}
	if rw.capture {
		attrs = append(attrs, "body", redactBody(rw.body.Bytes()))
	}
	l.Log(ctx, level, "response", attrs...)
}

func isRedacted(key string) bool {
	k := strings.ToLower(key)
	for _, s := range redactedKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

func redactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isRedacted(name) {
			out[name] = redacted
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// redactBody masks sensitive keys in JSON bodies. Non-JSON bodies are dropped
// whole if they mention a sensitive key.
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		if isRedacted(string(body)) {
			return redacted
		}
		return string(body)
	}

	out, err := json.Marshal(redactValue(data))
	if err != nil {
		return redacted
	}
	return string(out)
}

func redactValue(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if isRedacted(key) {
				out[key] = redacted
				continue
			}
			out[key] = redactValue(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item)
		}
		return out
	default:
		return v
	}
}
