// Package auth turns bearer tokens into the actor identity the ordering core
// authorizes against.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the actor. Subject is the actor id; TenantID is required
// for kitchen staff and ignored otherwise.
type Claims struct {
	Role     string `json:"role"`
	TenantID string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the actor.
func (i *Issuer) Issue(who actor.Actor) (string, error) {
	if err := who.Validate(); err != nil {
		return "", err
	}
	now := i.now()
	claims := Claims{
		Role: who.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   who.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	if tenant, ok := who.TenantID(); ok {
		claims.TenantID = tenant.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses the token and rebuilds the actor it names.
func (i *Issuer) Verify(token string) (actor.Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return actor.Actor{}, ErrInvalidToken
	}
	return claims.actor()
}

func (c *Claims) actor() (actor.Actor, error) {
	role, err := actor.ParseRole(c.Role)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	id, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var tenant *kernel.UUID
	if c.TenantID != "" {
		t, tenantErr := kernel.UUIDFromString(c.TenantID)
		if tenantErr != nil {
			return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, tenantErr)
		}
		tenant = &t
	}

	who, err := actor.NewActor(role, id, tenant)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return who, nil
}
