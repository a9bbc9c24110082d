package service

import (
	"context"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/rs/zerolog/log"
)

type LearningMaterialService interface {
	List(ctx context.Context, query dto.LearningMaterialQuery, actor Actor) (*dto.LearningMaterialListResponse, error)
	Get(ctx context.Context, id uint, actor Actor) (*dto.LearningMaterialResponse, error)
	Create(ctx context.Context, req dto.CreateLearningMaterialRequest, actor Actor) (*dto.LearningMaterialResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateLearningMaterialRequest) (*dto.LearningMaterialResponse, error)
	Delete(ctx context.Context, id uint) error
}

type learningMaterialService struct {
	repo     repository.LearningMaterialRepository
	specRepo repository.SpecializationRepository
}

func NewLearningMaterialService(repo repository.LearningMaterialRepository, specRepo repository.SpecializationRepository) LearningMaterialService {
	return &learningMaterialService{repo: repo, specRepo: specRepo}
}

func (s *learningMaterialService) List(ctx context.Context, query dto.LearningMaterialQuery, actor Actor) (*dto.LearningMaterialListResponse, error) {
	query.Normalize()
	filter := repository.MaterialFilter{
		SpecializationID: query.SpecializationID,
		PublishedOnly:    !actor.IsStaff(),
	}
	materials, total, err := s.repo.List(ctx, filter, query.Offset(), query.PerPage)
	if err != nil {
		log.Error().Err(err).Msg("LearningMaterialService.List: repository error")
		return nil, fmt.Errorf("error listing learning materials: %w", err)
	}
	resp := &dto.LearningMaterialListResponse{
		Data:       make([]dto.LearningMaterialResponse, 0, len(materials)),
		Pagination: dto.NewPagination(query.PageQuery, total),
	}
	for i := range materials {
		resp.Data = append(resp.Data, toMaterialResponse(&materials[i]))
	}
	return resp, nil
}

func (s *learningMaterialService) Get(ctx context.Context, id uint, actor Actor) (*dto.LearningMaterialResponse, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !material.IsPublished && !actor.IsStaff() {
		return nil, fmt.Errorf("learning material %d is not published: %w", id, common.ErrNotFound)
	}
	resp := toMaterialResponse(material)
	return &resp, nil
}

func (s *learningMaterialService) Create(ctx context.Context, req dto.CreateLearningMaterialRequest, actor Actor) (*dto.LearningMaterialResponse, error) {
	material := model.LearningMaterial{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
		CreatedByID: actor.UserID,
	}
	if req.SpecializationID != nil {
		spec, err := s.specRepo.FindByID(ctx, *req.SpecializationID)
		if err != nil {
			return nil, err
		}
		material.SpecializationID = &spec.ID
		material.Specialization = spec
	}
	if err := s.repo.Create(ctx, &material); err != nil {
		log.Error().Err(err).Msg("Failed to create learning material")
		return nil, err
	}
	resp := toMaterialResponse(&material)
	return &resp, nil
}

func (s *learningMaterialService) Update(ctx context.Context, id uint, req dto.UpdateLearningMaterialRequest) (*dto.LearningMaterialResponse, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Content != nil {
		material.Content = *req.Content
	}
	if req.IsPublished != nil {
		material.IsPublished = *req.IsPublished
	}
	if req.SpecializationID != nil {
		spec, err := s.specRepo.FindByID(ctx, *req.SpecializationID)
		if err != nil {
			return nil, err
		}
		material.SpecializationID = &spec.ID
		material.Specialization = spec
	}
	if err := s.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	resp := toMaterialResponse(material)
	return &resp, nil
}

func (s *learningMaterialService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
