package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// FixedSecretVerifier accepts exactly one secret: case-sensitive, no trimming.
type FixedSecretVerifier struct {
	secret []byte
}

// NewFixedSecretVerifier creates a verifier for secret.
func NewFixedSecretVerifier(secret string) *FixedSecretVerifier {
	return &FixedSecretVerifier{secret: []byte(secret)}
}

func (v *FixedSecretVerifier) Verify(credential string) bool {
	if len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), v.secret) == 1
}

// BcryptVerifier accepts the secret whose bcrypt hash it holds.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier creates a verifier for a bcrypt hash such as the output
// of HashSecret.
func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: []byte(hash)}
}

func (v *BcryptVerifier) Verify(credential string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(credential)) == nil
}

// HashSecret returns the bcrypt hash of secret at the given cost.
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
