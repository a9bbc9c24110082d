package service

import (
	"context"
	"errors"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
)

type ProfileService interface {
	GetMine(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	UpdateMine(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	GetByUser(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	specRepo    repository.SpecializationRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, specRepo repository.SpecializationRepository) ProfileService {
	return &profileService{profileRepo: profileRepo, specRepo: specRepo}
}

func (s *profileService) GetMine(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	return s.GetByUser(ctx, userID)
}

// UpdateMine applies the non-nil fields, creating the profile on first use.
func (s *profileService) UpdateMine(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		profile = &model.Profile{UserID: userID}
	}

	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.Education != nil {
		profile.Education = *req.Education
	}
	if req.SpecializationID != nil {
		spec, err := s.specRepo.FindByID(ctx, *req.SpecializationID)
		if err != nil {
			return nil, err
		}
		profile.SpecializationID = &spec.ID
		profile.Specialization = spec
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) GetByUser(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}
