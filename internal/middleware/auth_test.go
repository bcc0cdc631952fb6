package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"nationpress/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "test@nationpress.local",
		DisplayName: "Test User",
		TwoFADone:   twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses. This allows tests to simulate
// the state after LoadSession has run without needing a real Valkey store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession(true)
		got := SessionFromCtx(ctxWithSession(context.Background(), sess))
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

func TestRequireStaff(t *testing.T) {
	t.Run("redirects page requests to login when no session", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireStaff(inner)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusSeeOther)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("redirect location: got %q, want %q", loc, "/admin/login")
		}
	})

	t.Run("returns 403 JSON for API requests when no session", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireStaff(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/create-page/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
		}

		var body struct {
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if body.OK || body.Error != "Forbidden" {
			t.Errorf("body: got %+v, want ok=false error=Forbidden", body)
		}
	})

	t.Run("returns 403 JSON for editable element saves when no session", func(t *testing.T) {
		inner, _ := okHandler()
		handler := RequireStaff(inner)

		req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
		}
	})

	t.Run("passes through when session exists", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireStaff(inner)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession(true)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
	})
}

func TestRequire2FA(t *testing.T) {
	t.Run("redirects to setup when 2FA incomplete", func(t *testing.T) {
		inner, called := okHandler()
		handler := Require2FA(inner)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession(false)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/2fa/setup" {
			t.Errorf("redirect location: got %q, want %q", loc, "/admin/2fa/setup")
		}
	})

	t.Run("passes through when 2FA done", func(t *testing.T) {
		inner, called := okHandler()
		handler := Require2FA(inner)

		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession(true)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
	})
}
