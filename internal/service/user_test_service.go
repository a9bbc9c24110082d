package service

import (
	"context"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/rs/zerolog/log"
)

// UserTestService serves the test catalog. Takers only see published tests and never see correct options.
type UserTestService interface {
	GetAllTests(ctx context.Context, actor Actor) ([]dto.TestSummaryDTO, error)
	GetTestDetails(ctx context.Context, testID uint, actor Actor) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

func (s *userTestService) GetAllTests(ctx context.Context, actor Actor) ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount(ctx, !actor.IsStaff())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Title:         twc.Test.Title,
			Description:   twc.Test.Description,
			Duration:      twc.Test.Duration,
			IsPublished:   twc.Test.IsPublished,
			QuestionCount: twc.QuestionCount,
			CreatedAt:     twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *userTestService) GetTestDetails(ctx context.Context, testID uint, actor Actor) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, err
	}
	staff := actor.IsStaff()
	if !test.IsPublished && !staff {
		return nil, fmt.Errorf("test %d is not published: %w", testID, common.ErrNotFound)
	}
	resp := toTestResponse(test, staff)
	return &resp, nil
}
