package services

import (
	"context"
	"errors"
	"strings"

	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/pkg/apperrors"
	"github.com/studenthub/backend/internal/pkg/auth"
	"github.com/studenthub/backend/internal/pkg/logger"
)

// AuthService handles registration, login and identity lookups.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authService struct {
	userStore  UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userStore UserStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		userStore:  userStore,
		jwtService: jwtService,
	}
}

// Register creates a student or faculty account and signs the caller in.
// Admin accounts cannot be self-registered.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role == models.RoleAdmin || !role.IsValid() {
		return nil, apperrors.NewValidationError("role must be student or faculty")
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Role:  role,
	}
	if req.Department != "" {
		department := req.Department
		user.Department = &department
	}
	if role == models.RoleStudent {
		if strings.TrimSpace(req.StudentID) == "" {
			return nil, apperrors.NewValidationError("studentId is required for student accounts")
		}
		studentID := strings.TrimSpace(req.StudentID)
		user.StudentID = &studentID
		user.Year = req.Year
	} else if req.StudentID != "" {
		return nil, apperrors.NewValidationError("studentId is only valid for student accounts")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, apperrors.ErrInternal
	}
	user.Password = hash

	id, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		return nil, err
	}
	user.ID = id

	logger.Info().Int64("userID", id).Str("role", string(role)).Msg("User registered")
	return s.issueTokens(user)
}

// Login verifies credentials and returns a fresh token.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return s.issueTokens(user)
}

// GetCurrentUser returns the profile of the authenticated caller.
func (s *authService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token")
		return nil, apperrors.ErrInternal
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}
