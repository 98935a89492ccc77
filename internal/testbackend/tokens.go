package testbackend

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitpro/internal/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	errUnknownUser  = errors.New("unknown user")
	errEmptySubject = errors.New("token has no subject")
)

// tokenIssuer signs HS256 tokens carrying the user id and email.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (ti *tokenIssuer) Issue(user users.User) (string, error) {
	now := ti.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ti.ttl).Unix(),
		"jti":   uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (ti *tokenIssuer) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(
		token,
		func(*jwt.Token) (any, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errEmptySubject
	}
	return sub, nil
}
