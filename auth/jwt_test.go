package auth

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/storage"
)

func TestNewValidator_Unconfigured(t *testing.T) {
	v := NewValidator("")
	if v != nil {
		t.Fatal("expected a nil validator without a base URL")
	}
	if _, err := v.ValidateToken("x"); !errors.Is(err, matcherrors.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	r := httptest.NewRequest("GET", "/api/stats", nil)
	if profile, ok := v.ProfileFromRequest(r); !ok || profile != storage.LocalProfile {
		t.Errorf("expected the local profile, got %q %v", profile, ok)
	}
}

func TestProfileFromRequest_RequiresBearer(t *testing.T) {
	v := NewValidator("https://auth.example.com/")
	r := httptest.NewRequest("GET", "/api/stats", nil)
	if _, ok := v.ProfileFromRequest(r); ok {
		t.Error("expected a missing token to be rejected")
	}
	r.Header.Set("Authorization", "Basic abc")
	if _, ok := v.ProfileFromRequest(r); ok {
		t.Error("expected a non-bearer header to be rejected")
	}
}

func TestClaimsHelpers(t *testing.T) {
	claims := jwt.MapClaims{"sub": "user-1", "name": "  Ada Lovelace "}
	if got := UserIDFromClaims(claims); got != "user-1" {
		t.Errorf("expected user-1, got %q", got)
	}
	if got := FirstNameFromClaims(claims); got != "Ada" {
		t.Errorf("expected Ada, got %q", got)
	}
	if got := UserIDFromClaims(jwt.MapClaims{"id": "legacy"}); got != "legacy" {
		t.Errorf("expected the id fallback, got %q", got)
	}
	if got := FirstNameFromClaims(jwt.MapClaims{}); got != "Player" {
		t.Errorf("expected the fallback name, got %q", got)
	}
}
