package bcrypt

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Secret1" {
		t.Fatal("hash must differ from the plaintext")
	}
	if strings.Contains(hash, "Secret1") {
		t.Fatal("hash must not embed the plaintext")
	}
}

func TestComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if err := ComparePassword(hash, "Secret1"); err != nil {
		t.Fatalf("expected matching password to verify: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error, got nil")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("Secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("Secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}
