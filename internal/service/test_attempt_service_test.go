package service

import (
	"context"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/config"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/lock"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var candidate = Actor{UserID: 7, Roles: []string{model.RoleCandidate}}

func newAttemptServiceForTest(tests ...*model.Test) (TestAttemptService, *fakeAttemptRepo) {
	attempts := newFakeAttemptRepo()
	svc := NewTestAttemptService(
		newFakeTestRepo(tests...),
		attempts,
		NewScoringService(),
		lock.NewLocalLocker(),
		&config.Config{StartLockTTL: time.Second},
	)
	return svc, attempts
}

func TestStartTest_IsIdempotent(t *testing.T) {
	svc, attempts := newAttemptServiceForTest(sampleTest())
	ctx := context.Background()

	first, err := svc.StartTest(ctx, 1, candidate)
	require.NoError(t, err)
	second, err := svc.StartTest(ctx, 1, candidate)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, string(model.AttemptInProgress), second.Status)
	assert.Equal(t, 1, attempts.creates)
}

func TestStartTest_UnpublishedHiddenFromCandidate(t *testing.T) {
	test := sampleTest()
	test.IsPublished = false
	svc, _ := newAttemptServiceForTest(test)

	_, err := svc.StartTest(context.Background(), 1, candidate)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.StartTest(context.Background(), 1, Actor{UserID: 1, Roles: []string{model.RoleHR}})
	assert.NoError(t, err)
}

func TestSubmitTest_WithoutStart(t *testing.T) {
	svc, _ := newAttemptServiceForTest(sampleTest())
	_, err := svc.SubmitTest(context.Background(), 1, candidate, dto.TestAttemptSubmitDTO{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubmitTest_CompletesAttempt(t *testing.T) {
	svc, attempts := newAttemptServiceForTest(sampleTest())
	ctx := context.Background()

	started, err := svc.StartTest(ctx, 1, candidate)
	require.NoError(t, err)

	done, err := svc.SubmitTest(ctx, 1, candidate, dto.TestAttemptSubmitDTO{Answers: []dto.UserAnswerDTO{
		{QuestionID: 11, SelectedOptionID: uintPtr(111)},
		{QuestionID: 12, SelectedOptionIDs: []uint{121, 122}},
		{QuestionID: 404},
	}})
	require.NoError(t, err)

	assert.Equal(t, started.ID, done.ID)
	assert.Equal(t, string(model.AttemptCompleted), done.Status)
	require.NotNil(t, done.Score)
	assert.Equal(t, 100.0, *done.Score)
	assert.NotNil(t, done.EndTime)
	assert.Equal(t, []uint{404}, done.SkippedQuestionIDs)

	stored, err := attempts.FindByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, stored.Status)
	assert.Len(t, stored.Answers, 2)

	_, err = svc.SubmitTest(ctx, 1, candidate, dto.TestAttemptSubmitDTO{})
	assert.ErrorIs(t, err, common.ErrNotFound)

	again, err := svc.StartTest(ctx, 1, candidate)
	require.NoError(t, err)
	assert.NotEqual(t, done.ID, again.ID)
}

func TestGetTestAttemptDetails_Ownership(t *testing.T) {
	svc, _ := newAttemptServiceForTest(sampleTest())
	ctx := context.Background()

	started, err := svc.StartTest(ctx, 1, candidate)
	require.NoError(t, err)

	_, err = svc.GetTestAttemptDetails(ctx, started.ID, Actor{UserID: 8, Roles: []string{model.RoleCandidate}})
	assert.ErrorIs(t, err, common.ErrForbidden)

	got, err := svc.GetTestAttemptDetails(ctx, started.ID, Actor{UserID: 2, Roles: []string{model.RoleAdmin}})
	require.NoError(t, err)
	assert.Equal(t, candidate.UserID, got.UserID)

	_, err = svc.GetTestAttemptDetails(ctx, 999, candidate)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListAttempts_FilterAndPaginate(t *testing.T) {
	svc, _ := newAttemptServiceForTest(sampleTest())
	ctx := context.Background()
	for _, uid := range []uint{7, 8, 9} {
		_, err := svc.StartTest(ctx, 1, Actor{UserID: uid, Roles: []string{model.RoleCandidate}})
		require.NoError(t, err)
	}

	resp, err := svc.ListAttempts(ctx, dto.AttemptListQuery{PageQuery: dto.PageQuery{Page: 1, PerPage: 2}})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.EqualValues(t, 3, resp.Pagination.Total)

	resp, err = svc.ListAttempts(ctx, dto.AttemptListQuery{UserID: uintPtr(8)})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, uint(8), resp.Data[0].UserID)
}
