package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerReviewService asks the LLM to comment on TEXT answers. Reviews never change grading.
type AnswerReviewService interface {
	ReviewAttempt(ctx context.Context, attemptID uint) ([]dto.AnswerReviewDTO, error)
	ListReviews(ctx context.Context, attemptID uint) ([]dto.AnswerReviewDTO, error)
}

type answerReviewService struct {
	attemptRepo repository.TestAttemptRepository
	answerRepo  repository.UserAnswerRepository
	reviewRepo  repository.AnswerReviewRepository
	llm         GeminiLLMService
}

func NewAnswerReviewService(
	attemptRepo repository.TestAttemptRepository,
	answerRepo repository.UserAnswerRepository,
	reviewRepo repository.AnswerReviewRepository,
	llm GeminiLLMService,
) AnswerReviewService {
	return &answerReviewService{
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		reviewRepo:  reviewRepo,
		llm:         llm,
	}
}

type reviewResult struct {
	answer   model.UserAnswer
	feedback string
	err      error
}

func (s *answerReviewService) ReviewAttempt(ctx context.Context, attemptID uint) ([]dto.AnswerReviewDTO, error) {
	if !s.llm.Available() {
		return nil, fmt.Errorf("AI review is not configured: %w", common.ErrServiceUnavailable)
	}
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptCompleted {
		return nil, fmt.Errorf("attempt %d is not completed: %w", attemptID, common.ErrConflict)
	}

	answers, err := s.answerRepo.FindByAttemptAndType(ctx, attemptID, model.QuestionText)
	if err != nil {
		return nil, fmt.Errorf("error loading text answers: %w", err)
	}

	var wg sync.WaitGroup
	resultsChan := make(chan reviewResult, len(answers))
	for _, ans := range answers {
		if ans.TextAnswer == nil || *ans.TextAnswer == "" {
			continue
		}
		wg.Add(1)
		go func(a model.UserAnswer) {
			defer wg.Done()
			feedback, err := s.llm.ReviewTextAnswer(ctx, &a.Question, *a.TextAnswer)
			resultsChan <- reviewResult{answer: a, feedback: feedback, err: err}
		}(ans)
	}
	wg.Wait()
	close(resultsChan)

	reviews := make([]model.AnswerReview, 0, len(answers))
	for res := range resultsChan {
		if res.err != nil {
			log.Error().Err(res.err).Uint("userAnswerID", res.answer.ID).Msg("ReviewAttempt: LLM review failed")
			continue
		}
		reviews = append(reviews, model.AnswerReview{
			UserAnswerID: res.answer.ID,
			UserAnswer:   res.answer,
			Model:        s.llm.ModelName(),
			Feedback:     res.feedback,
		})
	}

	if err := s.reviewRepo.CreateBatch(ctx, reviews); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("ReviewAttempt: failed to store reviews")
		return nil, err
	}
	log.Info().Uint("attemptID", attemptID).Int("reviewed", len(reviews)).Int("textAnswers", len(answers)).Msg("Attempt reviewed")
	return toReviewDTOs(reviews), nil
}

func (s *answerReviewService) ListReviews(ctx context.Context, attemptID uint) ([]dto.AnswerReviewDTO, error) {
	if _, err := s.attemptRepo.FindByID(ctx, attemptID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByAttemptID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("error loading reviews: %w", err)
	}
	return toReviewDTOs(reviews), nil
}

func toReviewDTOs(reviews []model.AnswerReview) []dto.AnswerReviewDTO {
	dtos := make([]dto.AnswerReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		dtos = append(dtos, dto.AnswerReviewDTO{
			ID:           r.ID,
			UserAnswerID: r.UserAnswerID,
			QuestionID:   r.UserAnswer.QuestionID,
			Model:        r.Model,
			Feedback:     r.Feedback,
			CreatedAt:    r.CreatedAt,
		})
	}
	return dtos
}
