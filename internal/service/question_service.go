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

type QuestionService interface {
	AddQuestion(ctx context.Context, testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	UpdateQuestion(ctx context.Context, id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(ctx context.Context, id uint) error
}

type questionService struct {
	repo     repository.QuestionRepository
	testRepo repository.TestRepository
}

func NewQuestionService(repo repository.QuestionRepository, testRepo repository.TestRepository) QuestionService {
	return &questionService{repo: repo, testRepo: testRepo}
}

func (s *questionService) AddQuestion(ctx context.Context, testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.testRepo.FindByID(ctx, testID); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Invalid TestID provided for question creation")
		return nil, err
	}

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}
	for _, q := range existing {
		if q.OrderInTest == question.OrderInTest {
			return nil, fmt.Errorf("order_in_test %d already used in test %d: %w", question.OrderInTest, testID, common.ErrValidation)
		}
	}

	question.TestID = testID
	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Msg("Failed to create question in service")
		return nil, err
	}
	resp := toQuestionResponse(&question, true)
	return &resp, nil
}

// UpdateQuestion replaces the question content and its whole option set.
func (s *questionService) UpdateQuestion(ctx context.Context, id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}

	if updated.OrderInTest != question.OrderInTest {
		siblings, err := s.repo.FindByTestID(ctx, question.TestID)
		if err != nil {
			return nil, err
		}
		for _, q := range siblings {
			if q.ID != question.ID && q.OrderInTest == updated.OrderInTest {
				return nil, fmt.Errorf("order_in_test %d already used in test %d: %w", updated.OrderInTest, question.TestID, common.ErrValidation)
			}
		}
	}

	question.Content = updated.Content
	question.Type = updated.Type
	question.Score = updated.Score
	question.OrderInTest = updated.OrderInTest
	question.Options = updated.Options

	if err := s.repo.Replace(ctx, question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to replace question")
		return nil, err
	}
	resp := toQuestionResponse(question, true)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// buildQuestions validates a full question set, including unique ordering.
func buildQuestions(reqs []dto.QuestionCreateDTO) ([]model.Question, error) {
	orderMap := make(map[int]bool, len(reqs))
	questions := make([]model.Question, 0, len(reqs))
	for _, qDto := range reqs {
		if orderMap[qDto.OrderInTest] {
			return nil, fmt.Errorf("duplicate order_in_test %d found in questions: %w", qDto.OrderInTest, common.ErrValidation)
		}
		orderMap[qDto.OrderInTest] = true

		q, err := buildQuestion(qDto)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// buildQuestion checks the option rules of the question type and maps the request to a model.
func buildQuestion(req dto.QuestionCreateDTO) (model.Question, error) {
	qType := model.QuestionType(req.Type)
	if !qType.IsValid() {
		return model.Question{}, fmt.Errorf("unknown question type %q: %w", req.Type, common.ErrValidation)
	}
	if req.Score < 0 {
		return model.Question{}, fmt.Errorf("question %d has a negative score: %w", req.OrderInTest, common.ErrValidation)
	}

	correct := 0
	for _, o := range req.Options {
		if o.IsCorrect {
			correct++
		}
	}

	switch qType {
	case model.QuestionSingleChoice:
		if len(req.Options) < 2 {
			return model.Question{}, fmt.Errorf("question %d (SINGLE_CHOICE) needs at least 2 options: %w", req.OrderInTest, common.ErrValidation)
		}
		if correct != 1 {
			return model.Question{}, fmt.Errorf("question %d (SINGLE_CHOICE) needs exactly 1 correct option, got %d: %w", req.OrderInTest, correct, common.ErrValidation)
		}
	case model.QuestionMultipleChoice:
		if len(req.Options) < 2 {
			return model.Question{}, fmt.Errorf("question %d (MULTIPLE_CHOICE) needs at least 2 options: %w", req.OrderInTest, common.ErrValidation)
		}
		if correct < 1 {
			return model.Question{}, fmt.Errorf("question %d (MULTIPLE_CHOICE) needs at least 1 correct option: %w", req.OrderInTest, common.ErrValidation)
		}
	case model.QuestionText:
		if len(req.Options) > 0 {
			return model.Question{}, fmt.Errorf("question %d (TEXT) must not have options: %w", req.OrderInTest, common.ErrValidation)
		}
	}

	question := model.Question{
		Content:     req.Content,
		Type:        qType,
		Score:       req.Score,
		OrderInTest: req.OrderInTest,
	}
	for _, o := range req.Options {
		question.Options = append(question.Options, model.AnswerOption{Content: o.Content, IsCorrect: o.IsCorrect})
	}
	return question, nil
}
