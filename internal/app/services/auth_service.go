package services

import (
	"crypto/subtle"

	"github.com/rs/zerolog"

	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
	"github.com/omniafit/omnia-backend/internal/pkg/auth"
)

// AdminRole is the only role the admin gate issues.
const AdminRole = "admin"

// AuthService validates the configured admin credentials and issues
// session tokens for the login cookie. Account management is deliberately
// out of scope; there is exactly one principal.
type AuthService interface {
	Login(username, password string) (string, error)
}

type authServiceImpl struct {
	username     string
	passwordHash string
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service instance.
func NewAuthService(username, passwordHash string, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		username:     username,
		passwordHash: passwordHash,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *authServiceImpl) Login(username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 ||
		!auth.CheckPassword(password, s.passwordHash) {
		s.logger.Warn().Str("username", username).Msg("Failed login attempt")
		return "", apperrors.ErrBadCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(s.username, AdminRole)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue session token")
		return "", err
	}
	return token, nil
}
