package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
	"github.com/omniafit/omnia-backend/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (AuthService, *auth.JWTService) {
	t.Helper()

	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:  "test-secret",
		SessionExp: time.Hour,
		Issuer:     "omnia.app",
	})
	return NewAuthService("admin", hash, jwtService, zerolog.Nop()), jwtService
}

func TestLoginIssuesAdminSession(t *testing.T) {
	svc, jwtService := newAuthFixture(t)

	token, err := svc.Login("admin", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "admin" || claims.Role != AdminRole {
		t.Errorf("claims = (%s, %s), want (admin, %s)", claims.Subject, claims.Role, AdminRole)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "root", "correct horse"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(tc.username, tc.password); !errors.Is(err, apperrors.ErrBadCredentials) {
				t.Errorf("err = %v, want ErrBadCredentials", err)
			}
		})
	}
}
