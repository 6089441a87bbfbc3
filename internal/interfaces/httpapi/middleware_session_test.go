package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mlahargou/fantasy-playoffs/internal/domain/user"
	"github.com/mlahargou/fantasy-playoffs/internal/usecase"
)

type stubSessionVerifier struct {
	users map[string]user.User
}

func (v *stubSessionVerifier) ValidateSession(_ context.Context, token string) (user.User, error) {
	u, ok := v.users[token]
	if !ok {
		return user.User{}, fmt.Errorf("%w: invalid or expired session", usecase.ErrUnauthorized)
	}
	return u, nil
}

func TestRequireSession_MissingCookie(t *testing.T) {
	verifier := &stubSessionVerifier{}
	handler := RequireSession(verifier, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("next handler should not run without a session cookie")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/entries", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireSession_ValidTokenPutsUserInContext(t *testing.T) {
	verifier := &stubSessionVerifier{users: map[string]user.User{
		"tok-1": {ID: 7, Email: "owner@example.com"},
	}}

	var seen user.User
	handler := RequireSession(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = sessionUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/entries", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if seen.ID != 7 || seen.Email != "owner@example.com" {
		t.Fatalf("unexpected session user: %+v", seen)
	}
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	verifier := &stubSessionVerifier{users: map[string]user.User{
		"tok-user":  {ID: 1, Email: "user@example.com"},
		"tok-admin": {ID: 2, Email: "admin@example.com", IsAdmin: true},
	}}

	var ran bool
	handler := RequireAdmin(verifier, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ran = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/managers", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-user"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-admin, got %d", rec.Code)
	}
	if ran {
		t.Fatal("next handler should not run for non-admin")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/managers", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-admin"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for admin, got %d", rec.Code)
	}
}
