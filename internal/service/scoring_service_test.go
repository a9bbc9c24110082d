package service

import (
	"testing"

	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTest() *model.Test {
	return &model.Test{
		ID:          1,
		Title:       "Go basics",
		IsPublished: true,
		Questions: []model.Question{
			{
				ID: 11, TestID: 1, Content: "2+2?", Type: model.QuestionSingleChoice, Score: 10, OrderInTest: 1,
				Options: []model.AnswerOption{
					{ID: 111, QuestionID: 11, Content: "4", IsCorrect: true},
					{ID: 112, QuestionID: 11, Content: "5"},
				},
			},
			{
				ID: 12, TestID: 1, Content: "Pick primes", Type: model.QuestionMultipleChoice, Score: 10, OrderInTest: 2,
				Options: []model.AnswerOption{
					{ID: 121, QuestionID: 12, Content: "2", IsCorrect: true},
					{ID: 122, QuestionID: 12, Content: "3", IsCorrect: true},
					{ID: 123, QuestionID: 12, Content: "4"},
				},
			},
		},
	}
}

func TestProcessAnswers_PartialScore(t *testing.T) {
	s := NewScoringService()
	res := s.ProcessAnswers(sampleTest(), []dto.UserAnswerDTO{
		{QuestionID: 11, SelectedOptionID: uintPtr(111)},
		{QuestionID: 12, SelectedOptionIDs: []uint{121}},
	})

	assert.Equal(t, 10, res.AwardedScore)
	assert.Equal(t, 20, res.MaxScore)
	assert.Equal(t, 50.0, res.Percentage)
	require.Len(t, res.Answers, 2)
	assert.True(t, res.Answers[0].IsCorrect)
	assert.Equal(t, 10, res.Answers[0].ScoreAwarded)
	assert.False(t, res.Answers[1].IsCorrect)
	assert.Zero(t, res.Answers[1].ScoreAwarded)
}

func TestProcessAnswers_MultipleChoiceExactSet(t *testing.T) {
	s := NewScoringService()
	res := s.ProcessAnswers(sampleTest(), []dto.UserAnswerDTO{
		{QuestionID: 12, SelectedOptionIDs: []uint{122, 121, 121}},
	})
	require.Len(t, res.Answers, 1)
	assert.True(t, res.Answers[0].IsCorrect)
	assert.ElementsMatch(t, []uint{121, 122}, []uint(res.Answers[0].SelectedOptionIDs))

	res = s.ProcessAnswers(sampleTest(), []dto.UserAnswerDTO{
		{QuestionID: 12, SelectedOptionIDs: []uint{121, 122, 123}},
	})
	assert.False(t, res.Answers[0].IsCorrect)
}

func TestProcessAnswers_ForeignOptionIsWrong(t *testing.T) {
	s := NewScoringService()
	res := s.ProcessAnswers(sampleTest(), []dto.UserAnswerDTO{
		{QuestionID: 11, SelectedOptionID: uintPtr(121)},
	})
	require.Len(t, res.Answers, 1)
	assert.Nil(t, res.Answers[0].SelectedOptionID)
	assert.False(t, res.Answers[0].IsCorrect)
}

func TestProcessAnswers_SkipsUnknownAndDuplicates(t *testing.T) {
	s := NewScoringService()
	res := s.ProcessAnswers(sampleTest(), []dto.UserAnswerDTO{
		{QuestionID: 11, SelectedOptionID: uintPtr(111)},
		{QuestionID: 11, SelectedOptionID: uintPtr(112)},
		{QuestionID: 999, SelectedOptionID: uintPtr(1)},
	})
	assert.Len(t, res.Answers, 1)
	assert.Equal(t, []uint{11, 999}, res.SkippedQuestionIDs)
	assert.Equal(t, 10, res.AwardedScore)
}

func TestProcessAnswers_TextIsNotGraded(t *testing.T) {
	test := sampleTest()
	test.Questions = append(test.Questions, model.Question{
		ID: 13, TestID: 1, Content: "Explain goroutines", Type: model.QuestionText, Score: 5, OrderInTest: 3,
	})
	s := NewScoringService()
	res := s.ProcessAnswers(test, []dto.UserAnswerDTO{
		{QuestionID: 13, TextAnswer: strPtr("lightweight threads")},
	})
	require.Len(t, res.Answers, 1)
	assert.False(t, res.Answers[0].IsCorrect)
	assert.Zero(t, res.Answers[0].ScoreAwarded)
	assert.Equal(t, "lightweight threads", *res.Answers[0].TextAnswer)
	assert.Equal(t, 25, res.MaxScore)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 100.0, Percentage(3, 3))
	assert.Equal(t, 33.33, Percentage(1, 3))
}
