package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	inner, _ := okHandler()
	handler := rl.Middleware(inner)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/citizenship/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rr.Code)
		}
	}

	// Fourth request inside the window must be rejected.
	req := httptest.NewRequest(http.MethodPost, "/citizenship/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	inner, _ := okHandler()
	handler := rl.Middleware(inner)

	first := httptest.NewRequest(http.MethodPost, "/citizenship/", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("first client: got %d, want 200", rr.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/citizenship/", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	if rr.Code != http.StatusOK {
		t.Fatalf("second client: got %d, want 200", rr.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr only", "10.0.0.1:1234", "", "", "10.0.0.1"},
		{"x-forwarded-for single", "10.0.0.1:1234", "203.0.113.7", "", "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:1234", "203.0.113.7, 10.0.0.9", "", "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:1234", "", "203.0.113.8", "203.0.113.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
