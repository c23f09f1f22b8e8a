// Package jwtauth verifies the identity provider's bearer tokens and exposes
// the asserted caller identity. Token issuance lives with the provider; the
// helper here exists for tests and local development.
package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Omkar76/nscc-backend/internal/identity"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
)

// Claims carries the caller identity attributes asserted by the provider.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	DisplayName   string `json:"name"`
	PhotoURL      string `json:"picture"`
	jwt.RegisteredClaims
}

// Service validates HS256 tokens against a shared signing key.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func New(signingKey, issuer, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateToken mints a token for the caller. Used by tests and the local
// development login stub.
func (s *Service) GenerateToken(caller identity.Caller, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:         caller.Email,
		EmailVerified: caller.EmailVerified,
		DisplayName:   caller.DisplayName,
		PhotoURL:      caller.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.UID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a token, returning the caller it asserts.
func (s *Service) ValidateToken(tokenString string) (identity.Caller, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return identity.Caller{}, derrors.New(derrors.CodeUnauthorized, "token has expired")
		}
		return identity.Caller{}, derrors.New(derrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return identity.Caller{}, derrors.New(derrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return identity.Caller{}, derrors.New(derrors.CodeUnauthorized, "invalid token claims")
	}

	return identity.Caller{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		DisplayName:   claims.DisplayName,
		PhotoURL:      claims.PhotoURL,
	}, nil
}
