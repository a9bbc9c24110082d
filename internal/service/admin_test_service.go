package service

import (
	"context"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminTestService holds the test authoring workflows used by admin and HR.
type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO, actor Actor) (*dto.TestResponseDTO, error)
	UpdateTest(ctx context.Context, testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error)
	DeleteTest(ctx context.Context, testID uint) error
}

type adminTestService struct {
	testRepo repository.TestRepository
	specRepo repository.SpecializationRepository
}

func NewAdminTestService(testRepo repository.TestRepository, specRepo repository.SpecializationRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo, specRepo: specRepo}
}

func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO, actor Actor) (*dto.TestResponseDTO, error) {
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	specs, err := s.specRepo.FindByIDs(ctx, req.SpecializationIDs)
	if err != nil {
		log.Warn().Err(err).Interface("specializationIDs", req.SpecializationIDs).Msg("CreateTest: invalid specialization ids")
		return nil, err
	}

	testModel := model.Test{
		Title:           req.Title,
		Description:     req.Description,
		Duration:        req.Duration,
		IsPublished:     req.IsPublished,
		CreatedByID:     actor.UserID,
		Questions:       questions,
		Specializations: specs,
	}

	if err := s.testRepo.Create(ctx, &testModel); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Uint("testID", testModel.ID).Int("questions", len(questions)).Uint("createdBy", actor.UserID).Msg("Test created")

	created, err := s.testRepo.FindByIDWithQuestions(ctx, testModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testModel.ID).Msg("Failed to retrieve newly created test with questions for response")
		resp := toTestResponse(&testModel, true)
		return &resp, nil
	}
	resp := toTestResponse(created, true)
	return &resp, nil
}

func (s *adminTestService) UpdateTest(ctx context.Context, testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	// Resolve specializations before any write so a bad id leaves the test untouched.
	var specs []model.Specialization
	if req.SpecializationIDs != nil {
		specs, err = s.specRepo.FindByIDs(ctx, *req.SpecializationIDs)
		if err != nil {
			log.Warn().Err(err).Uint("testID", testID).Msg("UpdateTest: invalid specialization ids")
			return nil, err
		}
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Duration != nil {
		test.Duration = *req.Duration
	}
	if req.IsPublished != nil {
		test.IsPublished = *req.IsPublished
	}
	if req.SpecializationIDs != nil {
		err = s.testRepo.UpdateWithSpecializations(ctx, test, specs)
	} else {
		err = s.testRepo.Update(ctx, test)
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to update test")
		return nil, fmt.Errorf("database error updating test: %w", err)
	}

	updated, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}
	resp := toTestResponse(updated, true)
	return &resp, nil
}

func (s *adminTestService) DeleteTest(ctx context.Context, testID uint) error {
	if err := s.testRepo.Delete(ctx, testID); err != nil {
		return err
	}
	log.Info().Uint("testID", testID).Msg("Test deleted")
	return nil
}
