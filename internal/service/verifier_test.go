package service_test

import (
	"testing"

	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/service"
)

var (
	_ domain.CredentialVerifier = (*service.FixedSecretVerifier)(nil)
	_ domain.CredentialVerifier = (*service.BcryptVerifier)(nil)
)

func TestFixedSecretVerifier(t *testing.T) {
	v := service.NewFixedSecretVerifier("admin123")

	tests := []struct {
		credential string
		want       bool
	}{
		{"admin123", true},
		{"Admin123", false},
		{"admin123 ", false},
		{" admin123", false},
		{"admin12", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := v.Verify(tc.credential); got != tc.want {
			t.Errorf("Verify(%q) = %v, want %v", tc.credential, got, tc.want)
		}
	}
}

func TestFixedSecretVerifier_EmptySecretRejectsAll(t *testing.T) {
	v := service.NewFixedSecretVerifier("")
	if v.Verify("") {
		t.Fatal("empty secret must not accept an empty credential")
	}
}

func TestBcryptVerifier(t *testing.T) {
	// Cost 4 keeps the test fast.
	hash, err := service.HashSecret("s3cret-value", 4)
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}

	v := service.NewBcryptVerifier(hash)
	if !v.Verify("s3cret-value") {
		t.Fatal("expected matching secret to verify")
	}
	if v.Verify("s3cret-valuE") {
		t.Fatal("expected different secret to fail")
	}
	if service.NewBcryptVerifier("not-a-hash").Verify("anything") {
		t.Fatal("expected malformed hash to fail")
	}
}
