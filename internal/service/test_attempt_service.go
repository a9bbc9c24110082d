package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/lock"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/rs/zerolog/log"
)

// TestAttemptService drives the attempt lifecycle: NONE -> IN_PROGRESS -> COMPLETED.
type TestAttemptService interface {
	StartTest(ctx context.Context, testID uint, actor Actor) (*dto.TestAttemptDetailDTO, error)
	SubmitTest(ctx context.Context, testID uint, actor Actor, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptDetailDTO, error)
	GetTestAttemptDetails(ctx context.Context, attemptID uint, actor Actor) (*dto.TestAttemptDetailDTO, error)
	GetUserAttempts(ctx context.Context, testID *uint, userID uint) ([]dto.TestAttemptSummaryDTO, error)
	ListAttempts(ctx context.Context, query dto.AttemptListQuery) (*dto.AttemptListResponse, error)
}

type testAttemptService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	scoring     ScoringService
	locker      lock.Locker
	lockTTL     time.Duration
}

func NewTestAttemptService(
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	scoring ScoringService,
	locker lock.Locker,
	cfg *config.Config,
) TestAttemptService {
	ttl := cfg.StartLockTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &testAttemptService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		scoring:     scoring,
		locker:      locker,
		lockTTL:     ttl,
	}
}

// StartTest returns the caller's IN_PROGRESS attempt for the test, creating it if there is none.
func (s *testAttemptService) StartTest(ctx context.Context, testID uint, actor Actor) (*dto.TestAttemptDetailDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("StartTest: Test not found")
		return nil, err
	}
	if !test.IsPublished && !actor.IsStaff() {
		return nil, fmt.Errorf("test %d is not published: %w", testID, common.ErrNotFound)
	}

	release, err := s.locker.Acquire(ctx, lock.AttemptStartKey(testID, actor.UserID), s.lockTTL)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", actor.UserID).Msg("StartTest: Could not acquire start lock")
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, fmt.Errorf("attempt start already running: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("attempt start lock: %v: %w", err, common.ErrServiceUnavailable)
	}
	defer release()

	existing, err := s.attemptRepo.FindInProgress(ctx, testID, actor.UserID)
	if err == nil {
		log.Info().Uint("attemptID", existing.ID).Uint("testID", testID).Uint("userID", actor.UserID).Msg("StartTest: Resuming in-progress attempt")
		resp := toAttemptDetail(existing, test)
		return &resp, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking in-progress attempt: %w", err)
	}

	attempt := model.TestAttempt{
		TestID:    testID,
		UserID:    actor.UserID,
		StartTime: time.Now(),
		Status:    model.AttemptInProgress,
	}
	if err := s.attemptRepo.Create(ctx, &attempt); err != nil {
		if common.IsUniqueViolation(err) {
			// Another instance created it between our check and insert.
			if existing, findErr := s.attemptRepo.FindInProgress(ctx, testID, actor.UserID); findErr == nil {
				resp := toAttemptDetail(existing, test)
				return &resp, nil
			}
		}
		log.Error().Err(err).Uint("testID", testID).Uint("userID", actor.UserID).Msg("StartTest: Failed to create attempt")
		return nil, fmt.Errorf("failed to create test attempt: %w", err)
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("testID", testID).Uint("userID", actor.UserID).Msg("StartTest: Attempt started")
	resp := toAttemptDetail(&attempt, test)
	return &resp, nil
}

// SubmitTest grades the answers and completes the caller's IN_PROGRESS attempt.
func (s *testAttemptService) SubmitTest(ctx context.Context, testID uint, actor Actor, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindInProgress(ctx, testID, actor.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Warn().Uint("testID", testID).Uint("userID", actor.UserID).Msg("SubmitTest: No in-progress attempt")
			return nil, fmt.Errorf("no in-progress attempt for test %d: %w", testID, common.ErrNotFound)
		}
		return nil, err
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: Test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	result := s.scoring.ProcessAnswers(test, req.Answers)

	endTime := time.Now()
	score := result.Percentage
	attempt.EndTime = &endTime
	attempt.Score = &score

	if err := s.attemptRepo.Complete(ctx, attempt, result.Answers); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitTest: Failed to complete attempt")
		return nil, err
	}
	attempt.Status = model.AttemptCompleted
	attempt.Answers = result.Answers

	log.Info().
		Uint("attemptID", attempt.ID).
		Int("awarded", result.AwardedScore).
		Int("max", result.MaxScore).
		Float64("score", score).
		Int("skipped", len(result.SkippedQuestionIDs)).
		Msg("SubmitTest: Attempt completed")

	resp := toAttemptDetail(attempt, test)
	resp.SkippedQuestionIDs = result.SkippedQuestionIDs
	return &resp, nil
}

func (s *testAttemptService) GetTestAttemptDetails(ctx context.Context, attemptID uint, actor Actor) (*dto.TestAttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(ctx, attemptID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("GetTestAttemptDetails: Failed to find test attempt by ID.")
		return nil, err
	}
	if attempt.UserID != actor.UserID && !actor.IsStaff() {
		return nil, fmt.Errorf("attempt %d belongs to another user: %w", attemptID, common.ErrForbidden)
	}
	resp := toAttemptDetail(attempt, nil)
	return &resp, nil
}

func (s *testAttemptService) GetUserAttempts(ctx context.Context, testID *uint, userID uint) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByTestAndUser(ctx, testID, userID)
	if err != nil {
		log.Error().Err(err).Interface("testID", testID).Uint("userID", userID).Msg("GetUserAttempts: Failed to find attempts from repository.")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}
	dtos := make([]dto.TestAttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		dtos = append(dtos, toAttemptSummary(&attempts[i]))
	}
	return dtos, nil
}

func (s *testAttemptService) ListAttempts(ctx context.Context, query dto.AttemptListQuery) (*dto.AttemptListResponse, error) {
	query.Normalize()
	filter := repository.AttemptFilter{
		TestID: query.TestID,
		UserID: query.UserID,
		Status: model.AttemptStatus(query.Status),
	}
	attempts, total, err := s.attemptRepo.List(ctx, filter, query.Offset(), query.PerPage)
	if err != nil {
		log.Error().Err(err).Msg("ListAttempts: repository error")
		return nil, fmt.Errorf("error listing attempts: %w", err)
	}
	resp := &dto.AttemptListResponse{
		Data:       make([]dto.TestAttemptSummaryDTO, 0, len(attempts)),
		Pagination: dto.NewPagination(query.PageQuery, total),
	}
	for i := range attempts {
		resp.Data = append(resp.Data, toAttemptSummary(&attempts[i]))
	}
	return resp, nil
}
