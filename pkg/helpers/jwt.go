package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenScope restricts a token to one operation class. The scope embedded at
// issue time must match the scope expected at decode time.
type TokenScope string

const (
	ScopeAccess       TokenScope = "access_token"
	ScopeRefresh      TokenScope = "refresh_token"
	ScopeEmailConfirm TokenScope = "email_confirmation"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrScopeMismatch = errors.New("invalid scope for token")
)

// TokenManager issues and validates signed, expiring, scoped tokens.
// It is constructed once at startup and safe for concurrent use.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	confirmTTL time.Duration
}

// NewTokenManager fails if the signing secret is unset; this is the only
// failure mode, everything after construction is pure computation.
func NewTokenManager(secret string, accessTTL, refreshTTL, confirmTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token manager: signing secret is not configured")
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if confirmTTL <= 0 {
		confirmTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		confirmTTL: confirmTTL,
	}, nil
}

type TokenClaims struct {
	Scope TokenScope `json:"scope"`
	jwt.RegisteredClaims
}

func (m *TokenManager) ttlFor(scope TokenScope) time.Duration {
	switch scope {
	case ScopeRefresh:
		return m.refreshTTL
	case ScopeEmailConfirm:
		return m.confirmTTL
	default:
		return m.accessTTL
	}
}

// Issue signs a token for the subject with the given scope. A positive
// ttlOverride replaces the scope's default lifetime.
func (m *TokenManager) Issue(subject string, scope TokenScope, ttlOverride time.Duration) (string, time.Time, error) {
	ttl := m.ttlFor(scope)
	if ttlOverride > 0 {
		ttl = ttlOverride
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := &TokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Decode verifies signature and expiry, checks the embedded scope against
// expected, and returns the subject unchanged. Expiry is compared against the
// current time with no leeway.
func (m *TokenManager) Decode(tokenStr string, expected TokenScope) (string, error) {
	claims := &TokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !tkn.Valid {
		return "", ErrInvalidToken
	}
	if claims.Scope != expected {
		return "", ErrScopeMismatch
	}
	return claims.Subject, nil
}
