package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	logBodyLimit = 8 << 10
	maxBodyBytes = 1 << 20
	redacted     = "***redacted***"
	truncatedTag = "...truncated..."
	requestIDKey = "X-Request-Id"
)

// Lower-cased JSON keys whose values never reach the log.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"authorization": {},
	"token":         {},
	"secret":        {},
	"admincode":     {},
}

// Probe routes are logged at debug level without bodies.
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

// responseRecorder keeps the first logBodyLimit bytes of the response.
type responseRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if room := logBodyLimit - w.buf.Len(); room > 0 {
		w.buf.Write(b[:min(len(b), room)])
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) body() string {
	if !isJSON(w.Header().Get("Content-Type")) {
		return ""
	}
	out := string(redactJSON(w.buf.Bytes()))
	if w.buf.Len() >= logBodyLimit {
		out += truncatedTag
	}
	return out
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}

func redactJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	b, err := json.Marshal(scrub(v))
	if err != nil {
		return raw
	}
	return b
}

func scrub(x any) any {
	switch v := x.(type) {
	case map[string]any:
		for k, val := range v {
			if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
				v[k] = redacted
				continue
			}
			v[k] = scrub(val)
		}
	case []any:
		for i := range v {
			v[i] = scrub(v[i])
		}
	}
	return x
}

// captureRequest reads a JSON body for the log and puts the original
// bytes back so binding still sees the password and the totals.
func captureRequest(r *http.Request) string {
	if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	if len(body) > logBodyLimit {
		// a cut document is not valid JSON, so nothing to redact field by field
		return redacted + truncatedTag
	}
	return string(redactJSON(body))
}

func requestID(c *gin.Context) string {
	id := c.GetHeader(requestIDKey)
	if id == "" {
		id = uuid.NewString()
		c.Request.Header.Set(requestIDKey, id)
	}
	c.Header(requestIDKey, id)
	return id
}

// Logging injects a request-scoped slog.Logger and writes one access line per request.
func Logging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()

		l := base.With(
			"req_id", requestID(c),
			"method", c.Request.Method,
			"route", route,
			"remote", c.ClientIP(),
		)
		logging.With(c, l)

		if _, quiet := quietPaths[route]; quiet {
			c.Next()
			l.Debug("http_request", "status", c.Writer.Status(), "dur_ms", time.Since(start).Milliseconds())
			return
		}

		reqBody := captureRequest(c.Request)
		rec := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", c.Writer.Size(),
		}
		if reqBody != "" {
			attrs = append(attrs, "req_body", reqBody)
		}
		if respBody := rec.body(); respBody != "" {
			attrs = append(attrs, "resp_body", respBody)
		}
		if len(c.Params) > 0 {
			attrs = append(attrs, "params", c.Params)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			l.Error("http_request", attrs...)
		case status >= http.StatusBadRequest:
			l.Warn("http_request", attrs...)
		default:
			l.Info("http_request", attrs...)
		}
	}
}
