package service

import (
	"math"

	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/rs/zerolog/log"
)

// ScoringResult is the graded form of one submission.
type ScoringResult struct {
	Answers            []model.UserAnswer
	AwardedScore       int
	MaxScore           int
	Percentage         float64
	SkippedQuestionIDs []uint // unknown or repeated question ids, not stored
}

type ScoringService interface {
	ProcessAnswers(test *model.Test, submitted []dto.UserAnswerDTO) ScoringResult
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// ProcessAnswers grades the submitted answers against the test's questions.
// MaxScore is the weight of every question in the test, answered or not, TEXT included.
func (s *scoringService) ProcessAnswers(test *model.Test, submitted []dto.UserAnswerDTO) ScoringResult {
	questionMap := make(map[uint]*model.Question, len(test.Questions))
	for i := range test.Questions {
		questionMap[test.Questions[i].ID] = &test.Questions[i]
	}

	result := ScoringResult{MaxScore: test.TotalWeight()}
	answered := make(map[uint]bool, len(submitted))
	for _, a := range submitted {
		question, exists := questionMap[a.QuestionID]
		if !exists {
			log.Warn().Uint("questionID", a.QuestionID).Uint("testID", test.ID).Msg("ProcessAnswers: answer for a question not part of this test, skipping.")
			result.SkippedQuestionIDs = append(result.SkippedQuestionIDs, a.QuestionID)
			continue
		}
		if answered[question.ID] {
			log.Warn().Uint("questionID", question.ID).Uint("testID", test.ID).Msg("ProcessAnswers: duplicate answer for question, keeping the first.")
			result.SkippedQuestionIDs = append(result.SkippedQuestionIDs, a.QuestionID)
			continue
		}
		answered[question.ID] = true

		graded := gradeAnswer(question, a)
		result.AwardedScore += graded.ScoreAwarded
		result.Answers = append(result.Answers, graded)
	}

	result.Percentage = Percentage(result.AwardedScore, result.MaxScore)
	return result
}

// Percentage is awarded/max*100 rounded to two decimals, and 0 when max is 0.
func Percentage(awarded, max int) float64 {
	if max <= 0 {
		return 0
	}
	return math.Round(float64(awarded)/float64(max)*100*100) / 100
}

func gradeAnswer(q *model.Question, a dto.UserAnswerDTO) model.UserAnswer {
	answer := model.UserAnswer{QuestionID: q.ID}

	switch q.Type {
	case model.QuestionText:
		// Stored as-is. TEXT answers are never graded.
		answer.TextAnswer = a.TextAnswer
		return answer

	case model.QuestionMultipleChoice:
		if len(a.SelectedOptionIDs) > 0 {
			answer.SelectedOptionIDs, answer.IsCorrect = gradeOptionSet(q, a.SelectedOptionIDs)
			break
		}
		answer.SelectedOptionID, answer.IsCorrect = gradeSingleOption(q, a.SelectedOptionID)

	default:
		selected := a.SelectedOptionID
		if selected == nil && len(a.SelectedOptionIDs) == 1 {
			selected = &a.SelectedOptionIDs[0]
		}
		answer.SelectedOptionID, answer.IsCorrect = gradeSingleOption(q, selected)
	}

	if answer.IsCorrect {
		answer.ScoreAwarded = q.Score
	}
	return answer
}

// gradeSingleOption keeps the selection only when it belongs to the question.
func gradeSingleOption(q *model.Question, selected *uint) (*uint, bool) {
	if selected == nil {
		return nil, false
	}
	option, ok := q.Option(*selected)
	if !ok {
		log.Warn().Uint("questionID", q.ID).Uint("optionID", *selected).Msg("gradeAnswer: selected option does not belong to question.")
		return nil, false
	}
	id := option.ID
	return &id, option.IsCorrect
}

// gradeOptionSet awards only an exact match with the correct options. There is no partial credit.
func gradeOptionSet(q *model.Question, selected []uint) ([]uint, bool) {
	chosen := make(map[uint]bool, len(selected))
	kept := make([]uint, 0, len(selected))
	allValid := true
	for _, id := range selected {
		if chosen[id] {
			continue
		}
		chosen[id] = true
		if _, ok := q.Option(id); !ok {
			allValid = false
			continue
		}
		kept = append(kept, id)
	}

	correct := q.CorrectOptionIDs()
	if !allValid || len(correct) == 0 || len(kept) != len(correct) {
		return kept, false
	}
	for _, id := range correct {
		if !chosen[id] {
			return kept, false
		}
	}
	return kept, true
}
