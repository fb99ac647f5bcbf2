// Package auth holds the token codec and password hashing primitives shared
// by the service layer and the HTTP middleware.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quickblog/blog-api/internal/core/domain"
)

// TokenUser is the identity snapshot embedded in every token. It reflects
// the user record as of issuance and is not refreshed until a new token is
// minted.
type TokenUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Claims is the signed payload shared by access and refresh tokens. The two
// kinds differ only in the Refresh flag; consumers must check it explicitly.
type Claims struct {
	User    TokenUser `json:"user"`
	Refresh bool      `json:"refresh"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single server-held secret. It is
// stateless and safe for concurrent use.
type Codec struct {
	secret []byte
	method jwt.SigningMethod

	// now is swapped out in tests for deterministic issue/expiry times.
	now func() time.Time
}

// NewCodec builds a Codec from the configured secret and algorithm name.
// Only the HMAC family is supported.
func NewCodec(secret, algorithm string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}

	var method jwt.SigningMethod
	switch strings.ToUpper(strings.TrimSpace(algorithm)) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}

	return &Codec{secret: []byte(secret), method: method, now: time.Now}, nil
}

// Issue signs a token for user valid for ttl. Refresh tokens carry
// refresh=true and are rejected wherever an access token is expected.
func (c *Codec) Issue(user TokenUser, ttl time.Duration, refresh bool) (string, error) {
	now := c.now()
	claims := Claims{
		User:    user,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the claims. Failures map
// to the distinct domain error kinds; Decode does not care what the token is
// used for; callers check the Refresh flag themselves.
func (c *Codec) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	default:
		return domain.ErrInvalidToken
	}
}
