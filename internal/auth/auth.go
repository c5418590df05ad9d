package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ctxKeyAuthInfo ctxKey = "formdesk.authInfo"

// AuthInfo holds the authenticated principal for the request.
type AuthInfo struct {
	// Subject is the sub claim of the validated token, or "debug" when the
	// debug token escape hatch was used.
	Subject string
}

// NewContext returns ctx carrying the given principal. The middleware uses it
// for every authenticated request; tests use it to act as a principal without
// a full HTTP round trip.
func NewContext(ctx context.Context, ai *AuthInfo) context.Context {
	return context.WithValue(ctx, ctxKeyAuthInfo, ai)
}

// FromContext returns the AuthInfo stored in the request context, or nil.
func FromContext(ctx context.Context) *AuthInfo {
	v := ctx.Value(ctxKeyAuthInfo)
	if v == nil {
		return nil
	}
	if ai, ok := v.(*AuthInfo); ok {
		return ai
	}
	return nil
}

// Config controls the write-path auth middleware.
type Config struct {
	// JWTSecret is the HMAC secret bearer tokens are validated against.
	JWTSecret string

	// AllowDebugToken enables the X-Debug-Token header for local runs.
	// Never enable in production.
	AllowDebugToken bool
	DebugToken      string
}

// NewMiddleware validates HS256 bearer tokens and places the principal in the
// request context. When AllowDebugToken is set, a matching X-Debug-Token
// header is accepted instead.
func NewMiddleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.AllowDebugToken {
				if token := r.Header.Get("X-Debug-Token"); token != "" && token == cfg.DebugToken {
					serveAs(next, w, r, &AuthInfo{Subject: "debug"})
					return
				}
			}

			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, "bearer token required", http.StatusUnauthorized)
				return
			}
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				http.Error(w, "token subject required", http.StatusUnauthorized)
				return
			}
			serveAs(next, w, r, &AuthInfo{Subject: sub})
		})
	}
}

func serveAs(next http.Handler, w http.ResponseWriter, r *http.Request, ai *AuthInfo) {
	next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), ai)))
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

// IssueToken mints an HS256 token for the given subject. Used by tests and
// local tooling.
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
