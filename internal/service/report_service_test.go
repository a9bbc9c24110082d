package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedAttemptFixture() *model.TestAttempt {
	end := time.Now()
	score := 50.0
	test := sampleTest()
	test.Questions = append(test.Questions, model.Question{ID: 13, TestID: 1, Content: "Explain", Type: model.QuestionText, Score: 0, OrderInTest: 3})
	return &model.TestAttempt{
		ID:        5,
		TestID:    1,
		Test:      *test,
		UserID:    7,
		User:      &model.User{ID: 7, Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"},
		StartTime: end.Add(-10 * time.Minute),
		EndTime:   &end,
		Status:    model.AttemptCompleted,
		Score:     &score,
		Answers: []model.UserAnswer{
			{QuestionID: 11, SelectedOptionID: uintPtr(111), IsCorrect: true, ScoreAwarded: 10},
			{QuestionID: 13, TextAnswer: strPtr("free text")},
		},
	}
}

func TestBuildAttemptReport(t *testing.T) {
	r := buildAttemptReport(completedAttemptFixture())

	assert.Equal(t, "Jane Doe", r.CandidateName)
	assert.Equal(t, "jane@example.com", r.Email)
	assert.Equal(t, "Go basics", r.TestTitle)
	require.Len(t, r.Questions, 3)

	assert.True(t, r.Questions[0].Answered)
	assert.True(t, r.Questions[0].IsCorrect)
	assert.Equal(t, []string{"4"}, r.Questions[0].SelectedOption)
	assert.Equal(t, []string{"4"}, r.Questions[0].CorrectOption)

	assert.False(t, r.Questions[1].Answered)
	assert.Equal(t, []string{"2", "3"}, r.Questions[1].CorrectOption)

	assert.True(t, r.Questions[2].Answered)
	assert.Equal(t, "free text", r.Questions[2].TextAnswer)
}

func TestAttemptPDF(t *testing.T) {
	attempts := newFakeAttemptRepo()
	fixture := completedAttemptFixture()
	attempts.attempts[fixture.ID] = fixture

	running := &model.TestAttempt{ID: 6, TestID: 1, UserID: 7, Status: model.AttemptInProgress, StartTime: time.Now()}
	attempts.attempts[running.ID] = running

	svc := NewReportService(attempts)

	pdf, err := svc.AttemptPDF(context.Background(), fixture.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = svc.AttemptPDF(context.Background(), running.ID)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.AttemptPDF(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
