// Package auth verifies access tokens issued by the external auth provider
// and exposes the caller's session on the request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/http/respond"
)

var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// Session identifies the authenticated caller.
type Session struct {
	UserID uuid.UUID
	Email  string
}

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type Config struct {
	Secret     string
	Audience   string
	Issuer     string
	CookieName string
}

type Verifier struct {
	secret     []byte
	cookieName string
	parser     *jwt.Parser
}

func NewVerifier(cfg Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}

	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		parser:     jwt.NewParser(opts...),
	}
}

// Verify parses and validates a signed token.
func (v *Verifier) Verify(token string) (*Session, error) {
	var claims Claims

	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return &Session{UserID: userID, Email: claims.Email}, nil
}

// Middleware rejects requests without a valid session before they reach a
// handler.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := v.tokenFromRequest(r)
		if err != nil {
			respond.Unauthorized(w)
			return
		}

		session, err := v.Verify(token)
		if err != nil {
			respond.Unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// tokenFromRequest reads a Bearer header first, then the session cookie.
func (v *Verifier) tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), nil
		}

		return "", ErrMissingToken
	}

	if v.cookieName != "" {
		if c, err := r.Cookie(v.cookieName); err == nil && c.Value != "" {
			return c.Value, nil
		}
	}

	return "", ErrMissingToken
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
