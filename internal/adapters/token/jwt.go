package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweetshop/api/internal/adapters/config"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/port"
	"github.com/sweetshop/api/internal/core/serviceerrors"
)

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 access tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(config config.JWTConfig) (port.TokenIssuer, error) {
	if config.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return &JWTIssuer{
		secret: []byte(config.Secret),
		ttl:    config.TTL,
	}, nil
}

func (i *JWTIssuer) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: identity.Email,
		Role:  string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	return token.SignedString(i.secret)
}

func (i *JWTIssuer) Verify(tokenString string) (*domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, serviceerrors.NewUnauthorizedError("invalid or expired token")
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok {
		return nil, serviceerrors.NewUnauthorizedError("invalid or expired token")
	}

	role := domain.Role(tokenClaims.Role)
	if !role.IsValid() {
		return nil, serviceerrors.NewUnauthorizedError("invalid or expired token")
	}

	return &domain.Identity{
		UserID: domain.ID(tokenClaims.Subject),
		Email:  tokenClaims.Email,
		Role:   role,
	}, nil
}
