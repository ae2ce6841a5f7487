// Package token issues and verifies the bearer tokens that guard the
// protected routes.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSecret is returned when signing or verification is attempted
// without a configured secret. The secret is checked at call time, not
// at startup.
var ErrNoSecret = errors.New("signing secret is not configured")

// Claims is the token payload. The user id is the only application
// claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"id"`
}

// Manager signs and parses tokens with a process-wide symmetric secret.
type Manager struct {
	secret string
	ttl    time.Duration
}

// NewManager creates a token manager. A ttl of zero disables the exp
// claim entirely, which is the default behavior of the service.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs an HS256 token carrying userID.
func (m *Manager) Issue(userID uuid.UUID) (string, error) {
	if m.secret == "" {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Parse validates the signature and returns the user id carried by the
// token. Any failure (bad signature, malformed token, expired claim)
// comes back as an error.
func (m *Manager) Parse(tokenString string) (uuid.UUID, error) {
	if m.secret == "" {
		return uuid.Nil, ErrNoSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, errors.New("token is invalid")
	}
	return claims.UserID, nil
}
