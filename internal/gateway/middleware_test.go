package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calliof/switchboard/internal/config"
	"github.com/calliof/switchboard/internal/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	h := requestIDMiddleware(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestCORSMiddlewareOpenByDefault(t *testing.T) {
	h := corsMiddleware(okHandler(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://any.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://any.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewareAllowlist(t *testing.T) {
	h := corsMiddleware(okHandler(), []string{"https://chat.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://chat.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://chat.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	h := corsMiddleware(okHandler(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/ws", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	h := loggingMiddleware(okHandler(), logging.New(nil, "silent"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveBindAddr(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.ServerConfig
		want string
	}{
		{"loopback", config.ServerConfig{Bind: "loopback", Port: 8080}, "127.0.0.1:8080"},
		{"all", config.ServerConfig{Bind: "all", Port: 8080}, "0.0.0.0:8080"},
		{"custom", config.ServerConfig{Bind: "custom", CustomBindHost: "10.0.0.5", Port: 9000}, "10.0.0.5:9000"},
		{"custom without host", config.ServerConfig{Bind: "custom", Port: 9000}, "0.0.0.0:9000"},
		{"default", config.ServerConfig{Port: 8080}, "127.0.0.1:8080"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveBindAddr(tc.cfg))
		})
	}
}
