package domain

// CredentialVerifier decides whether a submitted admin credential is valid.
// Implementations must not reveal anything about the expected secret.
type CredentialVerifier interface {
	Verify(credential string) bool
}
