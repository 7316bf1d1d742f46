package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lamar-health/care-plan-service/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuth_DisabledPassesThrough(t *testing.T) {
	mw := BasicAuth(config.BasicAuthConfig{Enabled: false})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 when disabled, got %d", rec.Code)
	}
}

func TestBasicAuth_MissingCredentials(t *testing.T) {
	cfg := config.BasicAuthConfig{
		Enabled:  true,
		Username: "admin",
		Password: "secret",
		Realm:    "Care Plan Generator - Lamar Health",
	}
	mw := BasicAuth(cfg)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
	challenge := rec.Header().Get("WWW-Authenticate")
	if !strings.Contains(challenge, "Care Plan Generator - Lamar Health") {
		t.Errorf("Expected challenge to name the realm, got %q", challenge)
	}
}

func TestBasicAuth_WrongPassword(t *testing.T) {
	cfg := config.BasicAuthConfig{Enabled: true, Username: "admin", Password: "secret", Realm: "r"}
	mw := BasicAuth(cfg)

	req := httptest.NewRequest("GET", "/", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", rec.Code)
	}
}

func TestBasicAuth_ValidCredentials(t *testing.T) {
	cfg := config.BasicAuthConfig{Enabled: true, Username: "admin", Password: "secret", Realm: "r"}
	mw := BasicAuth(cfg)

	req := httptest.NewRequest("GET", "/", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid credentials, got %d", rec.Code)
	}
}
