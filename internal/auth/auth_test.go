package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.IssueToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "42" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).IssueToken(1, "a@b.c")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewService("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)
	token, err := svc.IssueToken(1, "a@b.c")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestMiddleware(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	var seenUserID int64
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
	}))

	// no token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// valid token
	token, _ := svc.IssueToken(7, "x@y.z")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
	if seenUserID != 7 {
		t.Fatalf("expected user 7 in context, got %d", seenUserID)
	}
}
