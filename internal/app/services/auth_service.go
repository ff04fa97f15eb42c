package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/models"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/repositories"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"github.com/yigit/uniadvisor/internal/pkg/auth"
)

// ErrPasswordNotConfigured is returned by Login when the server has no shared password
var ErrPasswordNotConfigured = auth.ErrPasswordNotConfigured

// AuthService exchanges the shared password for a session token
type AuthService struct {
	profileRepo repositories.ProfileRepository
	jwtService  *auth.JWTService
	password    *auth.SharedPassword
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	profileRepo repositories.ProfileRepository,
	jwtService *auth.JWTService,
	password *auth.SharedPassword,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		jwtService:  jwtService,
		password:    password,
		logger:      logger,
	}
}

// Login verifies the shared password and signs a token. A still-valid token in
// the request keeps its identity; otherwise a new one is minted. The identity
// always ends up with a (possibly empty) profile.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.NewValidationError("Password is required", map[string]interface{}{
			"password": "password is required",
		})
	}

	if !s.password.Configured() {
		s.logger.Error().Msg("Login attempted but no shared password is configured")
		return nil, ErrPasswordNotConfigured
	}

	ok, err := s.password.Verify(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.logger.Warn().Msg("Login failed: invalid password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid password")
	}

	userID := s.reusableIdentity(req.Token)
	if userID == "" {
		userID = uuid.New().String()
	}

	if _, err := s.profileRepo.Upsert(ctx, userID, models.ProfilePatch{}); err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to create profile on login")
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, expiresIn, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to generate token")
		return nil, err
	}

	s.logger.Info().Str("userID", userID).Msg("User logged in")
	return &dto.LoginResponse{
		Token:     token,
		UserID:    userID,
		ExpiresIn: expiresIn,
	}, nil
}

func (s *AuthService) reusableIdentity(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Ignoring unusable token on login")
		return ""
	}
	return claims.UserID
}
