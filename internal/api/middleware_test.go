package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/project-mangla/apsaiassistant/internal/log"
)

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	handler := recoveryMiddleware(log.NewNop())(panicky)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d after panic, want 500", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = requestIDFromContext(r.Context())
	})

	handler := requestIDMiddleware()(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Error("request ID missing from context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("X-Request-ID header = %q, context value = %q", got, seen)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		trustProxy bool
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "192.0.2.1:5000",
			want:       "192.0.2.1",
		},
		{
			name:       "proxy headers ignored when untrusted",
			remoteAddr: "192.0.2.1:5000",
			realIP:     "203.0.113.9",
			trustProxy: false,
			want:       "192.0.2.1",
		},
		{
			name:       "x-real-ip preferred",
			remoteAddr: "10.0.0.1:5000",
			realIP:     "203.0.113.9",
			forwarded:  "198.51.100.2, 10.0.0.1",
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "x-forwarded-for first entry",
			remoteAddr: "10.0.0.1:5000",
			forwarded:  "198.51.100.2, 10.0.0.1",
			trustProxy: true,
			want:       "198.51.100.2",
		},
		{
			name:       "garbage header falls back to remote addr",
			remoteAddr: "10.0.0.1:5000",
			realIP:     "not-an-ip",
			trustProxy: true,
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := clientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(1.0, 2)

	if !rl.allow("192.0.2.1") {
		t.Fatal("first request should be allowed")
	}
	if !rl.allow("192.0.2.1") {
		t.Fatal("second request within burst should be allowed")
	}
	if rl.allow("192.0.2.1") {
		t.Fatal("third request should exhaust the burst")
	}

	// A different IP has its own bucket.
	if !rl.allow("192.0.2.2") {
		t.Fatal("fresh IP should be allowed")
	}
}
