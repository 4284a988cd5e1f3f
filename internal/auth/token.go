// Package auth issues and checks the session tokens handed out by the role
// picker.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/farellandr/seatsavvy/internal/clock"
	"github.com/farellandr/seatsavvy/internal/models"
)

const (
	DefaultTTL = 24 * time.Hour
	issuer     = "seatsavvy"
)

type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokens(secret string, ttl time.Duration, c clock.Clock) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if c == nil {
		c = clock.NewSystem()
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, clock: c}, nil
}

// Issue signs a token whose subject is the profile id.
func (t *Tokens) Issue(profile models.UserProfile) (string, time.Time, error) {
	now := t.clock.Now()
	expires := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse validates the token and returns its claims. Every failure wraps
// models.ErrUnauthenticated.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", models.ErrUnauthenticated)
	}
	return claims, nil
}
