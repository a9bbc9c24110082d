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

type UserService interface {
	List(ctx context.Context, query dto.UserListQuery, actor Actor) (*dto.UserListResponse, error)
	Get(ctx context.Context, id uint, actor Actor) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

// List pages through users. HR is restricted to candidates.
func (s *userService) List(ctx context.Context, query dto.UserListQuery, actor Actor) (*dto.UserListResponse, error) {
	query.Normalize()
	filter := repository.UserFilter{Role: query.Role, Search: query.Search}
	if !actor.HasRole(model.RoleAdmin) {
		if filter.Role != "" && filter.Role != model.RoleCandidate {
			return nil, fmt.Errorf("hr may only list candidates: %w", common.ErrForbidden)
		}
		filter.Role = model.RoleCandidate
	}

	users, total, err := s.userRepo.List(ctx, filter, query.Offset(), query.PerPage)
	if err != nil {
		log.Error().Err(err).Msg("UserService.List: repository error")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	resp := &dto.UserListResponse{
		Data:       make([]dto.UserResponse, 0, len(users)),
		Pagination: dto.NewPagination(query.PageQuery, total),
	}
	for i := range users {
		resp.Data = append(resp.Data, toUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) Get(ctx context.Context, id uint, actor Actor) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.HasRole(model.RoleAdmin) && !user.HasRole(model.RoleCandidate) {
		return nil, fmt.Errorf("user %d is not a candidate: %w", id, common.ErrForbidden)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	roles, err := s.roleRepo.FindByNames(ctx, req.Roles)
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
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Strs("roles", req.Roles).Msg("User created")
	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Consent != nil {
		user.Consent = *req.Consent
	}

	var roles []model.Role
	if req.Roles != nil {
		if roles, err = s.roleRepo.FindByNames(ctx, req.Roles); err != nil {
			return nil, err
		}
	}
	if err := s.userRepo.Update(ctx, user, roles); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("UserService.Update: repository error")
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id uint, actor Actor) error {
	if id == actor.UserID {
		return fmt.Errorf("cannot delete your own account: %w", common.ErrBadRequest)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Uint("userID", id).Uint("deletedBy", actor.UserID).Msg("User deleted")
	return nil
}
