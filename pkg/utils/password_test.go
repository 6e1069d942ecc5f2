package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if parts := strings.Split(hash, "."); len(parts) != 2 {
		t.Fatalf("expected salt.hash encoding, got %q", hash)
	}

	if err := VerifyPassword("s3cret-pass", hash); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if err := VerifyPassword("wrong-password", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestVerifyPasswordInvalidFormat(t *testing.T) {
	if err := VerifyPassword("whatever", "not-a-valid-hash"); !errors.Is(err, ErrInvalidHashFormat) {
		t.Errorf("expected ErrInvalidHashFormat, got %v", err)
	}
}

func TestHashPasswordBlank(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for blank password")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("expected different hashes for the same password")
	}
}
