package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formbureau/formdesk/internal/auth"
)

func protected(t *testing.T, cfg auth.Config) http.Handler {
	t.Helper()
	return auth.NewMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ai := auth.FromContext(r.Context())
		if ai == nil {
			t.Errorf("no auth info in context")
			http.Error(w, "no auth info", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(ai.Subject))
	}))
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := auth.Config{JWTSecret: "test-secret"}
	token, err := auth.IssueToken(cfg.JWTSecret, "clerk-7", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/bureau/forms", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(t, cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "clerk-7" {
		t.Fatalf("subject %q", rec.Body.String())
	}
}

func TestMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	cfg := auth.Config{JWTSecret: "test-secret"}
	h := protected(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/bureau/forms", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status %d", rec.Code)
	}

	other, err := auth.IssueToken("wrong-secret", "clerk-7", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/bureau/forms", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status %d", rec.Code)
	}

	expired, err := auth.IssueToken(cfg.JWTSecret, "clerk-7", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/bureau/forms", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: status %d", rec.Code)
	}
}

func TestMiddlewareDebugToken(t *testing.T) {
	cfg := auth.Config{AllowDebugToken: true, DebugToken: "hunter2"}
	h := protected(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/bureau/forms", nil)
	req.Header.Set("X-Debug-Token", "hunter2")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("debug token rejected: status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/bureau/forms", nil)
	req.Header.Set("X-Debug-Token", "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong debug token accepted: status %d", rec.Code)
	}
}
