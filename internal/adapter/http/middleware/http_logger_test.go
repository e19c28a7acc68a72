package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactJSON(t *testing.T) {
	in := `{"email":"a@b.c","Password":"pw","adminCode":"x","nested":{"token":"t"},"list":[{"secret":"s","keep":1}]}`

	out := string(redactJSON([]byte(in)))

	assert.JSONEq(t, `{"email":"a@b.c","Password":"***redacted***","adminCode":"***redacted***",
		"nested":{"token":"***redacted***"},"list":[{"secret":"***redacted***","keep":1}]}`, out)
	assert.Equal(t, "not json", string(redactJSON([]byte("not json"))))
}

func TestLogging_RedactsLogButNotHandlerBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, nil))

	var seen string
	r := gin.New()
	r.Use(Logging(l))
	r.POST("/login", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		seen = string(b)
		c.JSON(http.StatusOK, gin.H{"token": "abc"})
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.c","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, seen, "hunter22")
	assert.NotContains(t, logs.String(), "hunter22")
	assert.NotContains(t, logs.String(), `"abc"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logging(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-Id"))
}

func TestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Second))
	var hasDeadline bool
	r.GET("/", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, hasDeadline)
}

func TestCaptureRequest_OversizedBodyIsNotLogged(t *testing.T) {
	big := `{"password":"hunter22","note":"` + strings.Repeat("x", logBodyLimit) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")

	logged := captureRequest(req)

	assert.NotContains(t, logged, "hunter22")
	restored, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, big, string(restored))
}
