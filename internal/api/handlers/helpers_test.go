package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"fintrack/pkg/utils"
)

func TestUserID(t *testing.T) {
	req := httptest.NewRequest("GET", "/transactions", nil)

	if _, ok := UserID(req); ok {
		t.Error("expected no user id on a bare request")
	}

	ctx := context.WithValue(req.Context(), utils.ContextKey("userId"), float64(7))
	id, ok := UserID(req.WithContext(ctx))
	if !ok {
		t.Fatal("expected user id to be present")
	}
	if id != 7 {
		t.Errorf("UserID = %d, want 7", id)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+tag@sub.domain.org"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plainstring", "missing@tld", "two@@example.com", "spaces in@example.com"}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = true, want false", email)
		}
	}
}

func TestCheckBlankFields(t *testing.T) {
	type creds struct {
		Email    string
		Password string
	}

	if err := CheckBlankFields(creds{Email: "user@example.com", Password: "pass"}); err != nil {
		t.Errorf("expected nil for filled struct, got %v", err)
	}
	if err := CheckBlankFields(creds{Email: "user@example.com"}); err == nil {
		t.Error("expected error for blank field")
	}
}
