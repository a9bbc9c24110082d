package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	available bool
	fail      map[string]bool
}

func (l *stubLLM) ReviewTextAnswer(_ context.Context, q *model.Question, answer string) (string, error) {
	if l.fail[answer] {
		return "", errors.New("quota exceeded")
	}
	return "ok: " + answer, nil
}

func (l *stubLLM) ModelName() string { return "stub-model" }

func (l *stubLLM) Available() bool { return l.available }

type fakeAnswerRepo struct {
	answers []model.UserAnswer
}

func (r *fakeAnswerRepo) FindByAttemptAndType(_ context.Context, attemptID uint, qType model.QuestionType) ([]model.UserAnswer, error) {
	var out []model.UserAnswer
	for _, a := range r.answers {
		if a.TestAttemptID == attemptID && a.Question.Type == qType {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews []model.AnswerReview
}

func (r *fakeReviewRepo) CreateBatch(_ context.Context, reviews []model.AnswerReview) error {
	for i := range reviews {
		reviews[i].ID = uint(len(r.reviews)) + 1
		reviews[i].CreatedAt = time.Now()
		r.reviews = append(r.reviews, reviews[i])
	}
	return nil
}

func (r *fakeReviewRepo) FindByAttemptID(_ context.Context, attemptID uint) ([]model.AnswerReview, error) {
	var out []model.AnswerReview
	for _, rv := range r.reviews {
		if rv.UserAnswer.TestAttemptID == attemptID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func seedCompletedAttempt(t *testing.T, attempts *fakeAttemptRepo) uint {
	t.Helper()
	attempt := model.TestAttempt{TestID: 1, UserID: 7, Status: model.AttemptInProgress, StartTime: time.Now()}
	require.NoError(t, attempts.Create(context.Background(), &attempt))
	score := 0.0
	attempt.Score = &score
	require.NoError(t, attempts.Complete(context.Background(), &attempt, nil))
	return attempt.ID
}

func TestReviewAttempt_ReviewsTextAnswers(t *testing.T) {
	attempts := newFakeAttemptRepo()
	attemptID := seedCompletedAttempt(t, attempts)

	textQ := model.Question{ID: 13, Type: model.QuestionText, Content: "Explain channels"}
	answers := &fakeAnswerRepo{answers: []model.UserAnswer{
		{ID: 1, TestAttemptID: attemptID, QuestionID: 13, Question: textQ, TextAnswer: strPtr("pipes between goroutines")},
		{ID: 2, TestAttemptID: attemptID, QuestionID: 14, Question: model.Question{ID: 14, Type: model.QuestionText}, TextAnswer: strPtr("boom")},
		{ID: 3, TestAttemptID: attemptID, QuestionID: 15, Question: model.Question{ID: 15, Type: model.QuestionText}, TextAnswer: strPtr("")},
		{ID: 4, TestAttemptID: attemptID, QuestionID: 11, Question: model.Question{ID: 11, Type: model.QuestionSingleChoice}},
	}}
	reviews := &fakeReviewRepo{}
	svc := NewAnswerReviewService(attempts, answers, reviews, &stubLLM{available: true, fail: map[string]bool{"boom": true}})

	got, err := svc.ReviewAttempt(context.Background(), attemptID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].UserAnswerID)
	assert.Equal(t, uint(13), got[0].QuestionID)
	assert.Equal(t, "stub-model", got[0].Model)
	assert.Equal(t, "ok: pipes between goroutines", got[0].Feedback)

	listed, err := svc.ListReviews(context.Background(), attemptID)
	require.NoError(t, err)
	sort.Slice(listed, func(i, j int) bool { return listed[i].ID < listed[j].ID })
	assert.Len(t, listed, 1)
}

func TestReviewAttempt_Preconditions(t *testing.T) {
	attempts := newFakeAttemptRepo()
	inProgress := model.TestAttempt{TestID: 1, UserID: 7, Status: model.AttemptInProgress, StartTime: time.Now()}
	require.NoError(t, attempts.Create(context.Background(), &inProgress))

	svc := NewAnswerReviewService(attempts, &fakeAnswerRepo{}, &fakeReviewRepo{}, &stubLLM{available: true})
	_, err := svc.ReviewAttempt(context.Background(), inProgress.ID)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.ReviewAttempt(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrNotFound)

	offline, err := NewGeminiLLMService(&config.Config{})
	require.NoError(t, err)
	assert.False(t, offline.Available())
	svc = NewAnswerReviewService(attempts, &fakeAnswerRepo{}, &fakeReviewRepo{}, offline)
	_, err = svc.ReviewAttempt(context.Background(), inProgress.ID)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestExtractFeedback(t *testing.T) {
	assert.Equal(t, "Good answer.", extractFeedback("Feedback:\nGood answer."))
	assert.Equal(t, "Mostly right.", extractFeedback("  FEEDBACK: Mostly right.  "))
	assert.Equal(t, "No label here", extractFeedback("No label here"))
	assert.Empty(t, extractFeedback("   "))
}

func TestBuildReviewPrompt(t *testing.T) {
	p := buildReviewPrompt(&model.Question{Content: "What is a slice?"}, "a view over an array")
	assert.Contains(t, p, "What is a slice?")
	assert.Contains(t, p, "a view over an array")
	assert.Contains(t, p, "Feedback:")
}
