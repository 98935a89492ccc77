package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrOpaqueToken = errors.New("token is not a jwt")

// Claims are the parts of the backend token the client cares about.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt *time.Time
}

// ParseClaims reads the claims of token without verifying its signature.
// The client holds no key; the backend remains the only judge of validity.
func ParseClaims(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrOpaqueToken
	}

	claims := &Claims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if claims.Subject == "" {
		if id, ok := mapClaims["id"].(string); ok {
			claims.Subject = id
		}
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt := exp.Time
		claims.ExpiresAt = &expiresAt
	}

	return claims, nil
}

func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}
