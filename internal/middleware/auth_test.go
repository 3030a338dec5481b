package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/models"
	"github.com/tarcanfarm/farm-backend/internal/session"
)

func TestSessionTokenSources(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := SessionToken(r); got != "" {
		t.Errorf("no credentials: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	if got := SessionToken(r); got != "abc123" {
		t.Errorf("bearer: got %q", got)
	}

	// The cookie wins over the header.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "cookie-token"})
	r.Header.Set("Authorization", "Bearer header-token")
	if got := SessionToken(r); got != "cookie-token" {
		t.Errorf("cookie+header: got %q", got)
	}
}

func TestRequireAuth(t *testing.T) {
	sessions := session.NewMemoryStore()
	user := &models.User{ID: uuid.New(), Name: "Ayşe", Phone: "+905551234567"}
	token, err := sessions.Create(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}

	var seen *models.User
	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Valid session passes through with the user in context.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status %d", rec.Code)
	}
	if seen == nil || seen.ID != user.ID {
		t.Errorf("context user = %+v", seen)
	}

	// No token and a bogus token both stop at the gate.
	for _, token := range []string{"", "bogus"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		seen = nil
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status %d, want 401", token, rec.Code)
		}
		if seen != nil {
			t.Errorf("token %q: handler ran", token)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("OPTIONS reached the inner handler")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/fields", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight: status %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("credentials not allowed")
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	req.Header.Set("Origin", "http://evil.example")
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q for an unknown origin", got)
	}
}
