package service

import (
	"errors"
	"testing"
	"time"

	"github.com/examhall/exam-portal-backend/internal/config"
)

func newTestAuthService(secret string) *AuthService {
	cfg := &config.Config{
		JWTSecret:  secret,
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}
	return NewAuthService(cfg, nil)
}

func TestTeacherTokenRoundTrip(t *testing.T) {
	s := newTestAuthService("test-secret")

	token, err := s.GenerateTeacherToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.TokenType != TokenTypeTeacher {
		t.Errorf("token type = %q, want %q", claims.TokenType, TokenTypeTeacher)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signer := newTestAuthService("secret-a")
	verifier := newTestAuthService("secret-b")

	token, err := signer.GenerateTeacherToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	s := newTestAuthService("test-secret")
	if _, err := s.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	s := newTestAuthService("test-secret")

	hash, err := s.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := s.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := s.CheckPassword(hash, "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}
