package service

import (
	"context"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

type SpecializationService interface {
	List(ctx context.Context) ([]dto.SpecializationResponse, error)
	Get(ctx context.Context, id uint) (*dto.SpecializationResponse, error)
	Create(ctx context.Context, req dto.SpecializationRequest) (*dto.SpecializationResponse, error)
	Update(ctx context.Context, id uint, req dto.SpecializationRequest) (*dto.SpecializationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type specializationService struct {
	repo repository.SpecializationRepository
}

func NewSpecializationService(repo repository.SpecializationRepository) SpecializationService {
	return &specializationService{repo: repo}
}

func (s *specializationService) List(ctx context.Context) ([]dto.SpecializationResponse, error) {
	specs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching specializations: %w", err)
	}
	return toSpecializationResponses(specs), nil
}

func (s *specializationService) Get(ctx context.Context, id uint) (*dto.SpecializationResponse, error) {
	spec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSpecializationResponse(spec)
	return &resp, nil
}

func (s *specializationService) Create(ctx context.Context, req dto.SpecializationRequest) (*dto.SpecializationResponse, error) {
	spec := model.Specialization{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	}
	if spec.Slug == "" {
		return nil, fmt.Errorf("name %q yields an empty slug: %w", req.Name, common.ErrValidation)
	}
	if err := s.repo.Create(ctx, &spec); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, fmt.Errorf("specialization %q already exists: %w", req.Name, common.ErrConflict)
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create specialization")
		return nil, err
	}
	resp := toSpecializationResponse(&spec)
	return &resp, nil
}

func (s *specializationService) Update(ctx context.Context, id uint, req dto.SpecializationRequest) (*dto.SpecializationResponse, error) {
	spec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	spec.Name = req.Name
	spec.Slug = slug.Make(req.Name)
	spec.Description = req.Description
	if err := s.repo.Update(ctx, spec); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, fmt.Errorf("specialization %q already exists: %w", req.Name, common.ErrConflict)
		}
		return nil, err
	}
	resp := toSpecializationResponse(spec)
	return &resp, nil
}

func (s *specializationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
