package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/report"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/rs/zerolog/log"
)

type ReportService interface {
	AttemptPDF(ctx context.Context, attemptID uint) ([]byte, error)
}

type reportService struct {
	attemptRepo repository.TestAttemptRepository
}

func NewReportService(attemptRepo repository.TestAttemptRepository) ReportService {
	return &reportService{attemptRepo: attemptRepo}
}

// AttemptPDF renders a completed attempt as a PDF document.
func (s *reportService) AttemptPDF(ctx context.Context, attemptID uint) ([]byte, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptCompleted {
		return nil, fmt.Errorf("attempt %d is not completed: %w", attemptID, common.ErrConflict)
	}

	var buf bytes.Buffer
	if err := report.WriteAttemptPDF(&buf, buildAttemptReport(attempt)); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to render attempt report")
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func buildAttemptReport(attempt *model.TestAttempt) report.AttemptReport {
	r := report.AttemptReport{
		AttemptID: attempt.ID,
		TestTitle: attempt.Test.Title,
		Status:    string(attempt.Status),
		StartTime: attempt.StartTime,
		EndTime:   attempt.EndTime,
		Score:     attempt.Score,
	}
	if attempt.User != nil {
		r.CandidateName = strings.TrimSpace(attempt.User.FirstName + " " + attempt.User.LastName)
		r.Email = attempt.User.Email
	}

	answers := make(map[uint]model.UserAnswer, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answers[a.QuestionID] = a
	}

	for i := range attempt.Test.Questions {
		q := &attempt.Test.Questions[i]
		line := report.QuestionLine{
			Order:    q.OrderInTest,
			Content:  q.Content,
			Type:     string(q.Type),
			MaxScore: q.Score,
		}
		for _, o := range q.Options {
			if o.IsCorrect {
				line.CorrectOption = append(line.CorrectOption, o.Content)
			}
		}
		if a, ok := answers[q.ID]; ok {
			line.Answered = true
			line.IsCorrect = a.IsCorrect
			line.ScoreAwarded = a.ScoreAwarded
			if a.TextAnswer != nil {
				line.TextAnswer = *a.TextAnswer
			}
			for _, id := range selectedIDs(a) {
				if o, found := q.Option(id); found {
					line.SelectedOption = append(line.SelectedOption, o.Content)
				}
			}
		}
		r.Questions = append(r.Questions, line)
	}
	return r
}

func selectedIDs(a model.UserAnswer) []uint {
	if len(a.SelectedOptionIDs) > 0 {
		return a.SelectedOptionIDs
	}
	if a.SelectedOptionID != nil {
		return []uint{*a.SelectedOptionID}
	}
	return nil
}
