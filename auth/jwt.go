package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bwwq/fate-roulette/matcherrors"
	"github.com/bwwq/fate-roulette/storage"
)

const bearerPrefix = "Bearer "

// Validator checks JWTs against the JWKS published under a base URL. The
// key set is fetched on first use and refreshed in the background by
// keyfunc.
type Validator struct {
	baseURL string

	once sync.Once
	jwks keyfunc.Keyfunc
	err  error
}

// NewValidator returns a Validator for baseURL, or nil when baseURL is
// empty (auth not configured).
func NewValidator(baseURL string) *Validator {
	if baseURL == "" {
		return nil
	}
	return &Validator{baseURL: strings.TrimRight(baseURL, "/")}
}

func (v *Validator) keys() (keyfunc.Keyfunc, error) {
	v.once.Do(func() {
		v.jwks, v.err = keyfunc.NewDefault([]string{v.baseURL + "/.well-known/jwks.json"})
	})
	return v.jwks, v.err
}

// ValidateToken validates tokenString and returns its claims.
func (v *Validator) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	if v == nil {
		return nil, fmt.Errorf("auth base URL: %w", matcherrors.ErrNotConfigured)
	}
	u, err := url.Parse(v.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	expectedIssuer := u.Scheme + "://" + u.Host

	jwks, err := v.keys()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, jwks.Keyfunc,
		jwt.WithIssuer(expectedIssuer),
		jwt.WithValidMethods([]string{"EdDSA", "RS256", "ES256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Identify validates tokenString and returns the profile id and display
// name it carries.
func (v *Validator) Identify(tokenString string) (profile, name string, err error) {
	claims, err := v.ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	profile = UserIDFromClaims(claims)
	if profile == "" {
		return "", "", errors.New("token has no subject")
	}
	return profile, FirstNameFromClaims(claims), nil
}

// ProfileFromRequest returns the profile for an HTTP request: the local
// profile when auth is not configured, else the subject of the bearer
// token. ok is false when auth is configured and the token is missing or
// invalid.
func (v *Validator) ProfileFromRequest(r *http.Request) (profile string, ok bool) {
	if v == nil {
		return storage.LocalProfile, true
	}
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	profile, _, err := v.Identify(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		return "", false
	}
	return profile, true
}

// FirstNameFromClaims returns the first word of the "name" claim, or a fallback.
func FirstNameFromClaims(claims jwt.MapClaims) string {
	name, _ := claims["name"].(string)
	parts := strings.Fields(name)
	if len(parts) > 0 {
		return parts[0]
	}
	return "Player"
}

// UserIDFromClaims returns the user id from claims ("sub" or "id").
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}
