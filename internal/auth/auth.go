// Package auth resolves the miner identity a request acts on behalf of.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/mineral-licensing-api/pkg/config"
)

// Identity sources recorded on AuthContext.
const (
	SourceCookie = "cookie"
	SourceHeader = "header"
	SourceToken  = "token"
)

// ErrNoIdentity reports a request that carries no usable identity.
var ErrNoIdentity = errors.New("no identity on request")

// AuthContext is the identity a handler acts on behalf of. Verified is false
// when the identifier was taken from the request as-is.
type AuthContext struct {
	MinerID  string
	Source   string
	Verified bool
}

// Authenticator extracts an AuthContext from an incoming request.
type Authenticator interface {
	Authenticate(r *http.Request) (*AuthContext, error)
}

// HeaderAuthenticator trusts a miner id carried in a cookie or, failing that,
// in a request header. Issuing those values is the frontend's job.
type HeaderAuthenticator struct {
	CookieName string
	HeaderName string
}

// NewHeaderAuthenticator returns an authenticator using the given names,
// defaulting to the "userId" cookie and the "X-User-ID" header.
func NewHeaderAuthenticator(cookieName, headerName string) *HeaderAuthenticator {
	if cookieName == "" {
		cookieName = "userId"
	}
	if headerName == "" {
		headerName = "X-User-ID"
	}
	return &HeaderAuthenticator{CookieName: cookieName, HeaderName: headerName}
}

// Authenticate implements Authenticator.
func (a *HeaderAuthenticator) Authenticate(r *http.Request) (*AuthContext, error) {
	if cookie, err := r.Cookie(a.CookieName); err == nil && cookie.Value != "" {
		return &AuthContext{MinerID: cookie.Value, Source: SourceCookie}, nil
	}
	if value := r.Header.Get(a.HeaderName); value != "" {
		return &AuthContext{MinerID: value, Source: SourceHeader}, nil
	}
	return nil, ErrNoIdentity
}

// JWTAuthenticator accepts HS256 bearer tokens and reads the miner id from
// the subject claim.
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator returns an authenticator verifying tokens with secret.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Authenticate implements Authenticator.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (*AuthContext, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrNoIdentity
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fmt.Errorf("invalid authorization header: %w", ErrNoIdentity)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject: %w", ErrNoIdentity)
	}
	return &AuthContext{MinerID: claims.Subject, Source: SourceToken, Verified: true}, nil
}

// FromConfig selects the authenticator for the configured mode.
func FromConfig(cfg config.AuthConfig) (Authenticator, error) {
	switch cfg.Mode {
	case "", config.AuthModeHeader:
		return NewHeaderAuthenticator(cfg.CookieName, cfg.HeaderName), nil
	case config.AuthModeJWT:
		if cfg.JWTSecret == "" {
			return nil, errors.New("JWT_SECRET is required for jwt auth mode")
		}
		return NewJWTAuthenticator(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
