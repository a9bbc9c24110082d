package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/MaxKochergin/NNGP-sub002/internal/security"
	"github.com/rs/zerolog/log"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwt      *security.JWTManager
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwt *security.JWTManager) AuthService {
	return &authService{userRepo: userRepo, roleRepo: roleRepo, jwt: jwt}
}

// Register creates a candidate account with an empty profile and signs it in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !req.Consent {
		return nil, fmt.Errorf("consent to personal data processing is required: %w", common.ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	roles, err := s.roleRepo.FindByNames(ctx, []string{model.RoleCandidate})
	if err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Consent:      req.Consent,
		Roles:        roles,
		Profile:      &model.Profile{},
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, fmt.Errorf("email %s already registered: %w", email, common.ErrConflict)
		}
		log.Error().Err(err).Str("email", email).Msg("Register: failed to create user")
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Str("email", email).Msg("User registered")
	return s.issue(&user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Warn().Str("email", req.Email).Msg("Login: wrong password")
		return nil, fmt.Errorf("invalid email or password: %w", common.ErrUnauthorized)
	}
	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}
