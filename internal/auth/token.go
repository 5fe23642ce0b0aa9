// Package auth validates bearer tokens guarding the control surface.
// A provisioned device holds a single shared HS256 secret; there is no
// key distribution or rotation machinery.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quartzless/softrtc/internal/domain"
)

// Validator validates HS256 bearer tokens.
type Validator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewValidator creates a token validator. The secret must be non-empty;
// callers disable auth by not constructing a Validator at all.
func NewValidator(secret []byte, issuer, audience string) *Validator {
	return &Validator{secret: secret, issuer: issuer, audience: audience}
}

// Validate parses and fully validates a bearer token: signature,
// issuer, audience, and expiry. Token validity is checked against the
// host's own clock, not the simulated one - the guard protects the API,
// it is not part of the timekeeping model.
func (v *Validator) Validate(tokenString string) error {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	}

	if _, err := jwt.Parse(tokenString, v.keyFunc, opts...); err != nil {
		return fmt.Errorf("invalid access token: %v: %w", err, domain.ErrUnauthorized)
	}
	return nil
}

func (v *Validator) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return v.secret, nil
}
