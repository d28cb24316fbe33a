// Package token encodes and decodes signed session claims. A token is
// self-verifying but never authoritative on its own: the auth service pairs
// every decode with a revocation store lookup.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teledetect-platform/internal/model"
)

// Codec signs and verifies session tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewCodec(secret string, algorithm string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}

	return &Codec{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// TTL returns the lifetime applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

func (c *Codec) Issue(user model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(c.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry. Every failure mode collapses into
// model.ErrInvalidToken so callers cannot distinguish tamper from expiry.
func (c *Codec) Decode(tokenString string) (*model.TokenClaims, error) {
	return c.decode(tokenString, jwt.NewParser(jwt.WithValidMethods([]string{c.method.Alg()})))
}

// DecodeExpired verifies the signature but tolerates an elapsed expiry. It
// exists for logout, where an expired token may still identify whose session
// to clear; a forged or malformed token is still rejected.
func (c *Codec) DecodeExpired(tokenString string) (*model.TokenClaims, error) {
	return c.decode(tokenString, jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	))
}

func (c *Codec) decode(tokenString string, parser *jwt.Parser) (*model.TokenClaims, error) {
	parsed, err := parser.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &model.TokenClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	if exp, expErr := claimsMap.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	if claims.UserID == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}
