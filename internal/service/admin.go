package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/employee-pass/internal/domain"
)

const adminSubject = "admin"

// AdminGate checks the admin credential and issues the signed session token
// that stands for the authenticated flag.
type AdminGate struct {
	verifier  domain.CredentialVerifier
	jwtSecret []byte
	ttl       time.Duration
}

// NewAdminGate creates a new AdminGate.
func NewAdminGate(verifier domain.CredentialVerifier, jwtSecret string, ttl time.Duration) *AdminGate {
	return &AdminGate{
		verifier:  verifier,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

// Authenticate reports whether credential is the admin secret.
func (g *AdminGate) Authenticate(credential string) bool {
	return g.verifier.Verify(credential)
}

// Login verifies credential and returns a signed session token.
func (g *AdminGate) Login(credential string) (string, error) {
	if !g.Authenticate(credential) {
		return "", domain.ErrUnauthorized
	}

	token, err := g.generateJWT()
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}
	return token, nil
}

// ValidateToken parses and validates a session token.
func (g *AdminGate) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.jwtSecret, nil
	})
	if err != nil {
		return domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != adminSubject {
		return domain.ErrUnauthorized
	}
	return nil
}

// TTL is how long an issued token stays valid.
func (g *AdminGate) TTL() time.Duration {
	return g.ttl
}

func (g *AdminGate) generateJWT() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(g.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.jwtSecret)
}
