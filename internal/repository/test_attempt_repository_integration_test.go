package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/database"
	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/MaxKochergin/NNGP-sub002/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run with ATTEMPTS_INTEGRATION=1 and TEST_DATABASE_DSN pointing at a disposable database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("ATTEMPTS_INTEGRATION") != "1" {
		t.Skip("set ATTEMPTS_INTEGRATION=1 to run PostgreSQL integration tests")
	}
	dsn := os.Getenv("TEST_DATABASE_DSN")
	require.NotEmpty(t, dsn, "TEST_DATABASE_DSN is required")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedTest(t *testing.T, db *gorm.DB) (*model.User, *model.Test) {
	t.Helper()
	user := model.User{Email: uuid.NewString() + "@example.com", PasswordHash: "x", Consent: true}
	require.NoError(t, db.Create(&user).Error)

	test := model.Test{
		Title:       "Integration",
		IsPublished: true,
		CreatedByID: user.ID,
		Questions: []model.Question{{
			Content: "2+2?", Type: model.QuestionSingleChoice, Score: 1, OrderInTest: 1,
			Options: []model.AnswerOption{{Content: "4", IsCorrect: true}, {Content: "5"}},
		}},
	}
	require.NoError(t, repository.NewTestRepository(db).Create(context.Background(), &test))
	return &user, &test
}

func TestAttemptRepository_SingleInProgress(t *testing.T) {
	db := openTestDB(t)
	user, test := seedTest(t, db)
	repo := repository.NewTestAttemptRepository(db)
	ctx := context.Background()

	first := model.TestAttempt{TestID: test.ID, UserID: user.ID, StartTime: time.Now(), Status: model.AttemptInProgress}
	require.NoError(t, repo.Create(ctx, &first))

	second := model.TestAttempt{TestID: test.ID, UserID: user.ID, StartTime: time.Now(), Status: model.AttemptInProgress}
	err := repo.Create(ctx, &second)
	require.Error(t, err)
	assert.True(t, common.IsUniqueViolation(err))

	found, err := repo.FindInProgress(ctx, test.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestAttemptRepository_CompleteOnce(t *testing.T) {
	db := openTestDB(t)
	user, test := seedTest(t, db)
	repo := repository.NewTestAttemptRepository(db)
	ctx := context.Background()

	attempt := model.TestAttempt{TestID: test.ID, UserID: user.ID, StartTime: time.Now(), Status: model.AttemptInProgress}
	require.NoError(t, repo.Create(ctx, &attempt))

	end := time.Now()
	score := 100.0
	attempt.EndTime = &end
	attempt.Score = &score
	optionID := test.Questions[0].Options[0].ID
	answers := []model.UserAnswer{{QuestionID: test.Questions[0].ID, SelectedOptionID: &optionID, IsCorrect: true, ScoreAwarded: 1}}
	require.NoError(t, repo.Complete(ctx, &attempt, answers))

	err := repo.Complete(ctx, &attempt, nil)
	assert.ErrorIs(t, err, common.ErrConflict)

	stored, err := repo.FindByIDWithDetails(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, stored.Status)
	require.Len(t, stored.Answers, 1)
	assert.True(t, stored.Answers[0].IsCorrect)

	_, err = repo.FindInProgress(ctx, test.ID, user.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSpecializationRepository_RecreateAfterDelete(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSpecializationRepository(db)
	ctx := context.Background()
	suffix := uuid.NewString()

	first := model.Specialization{Name: "Backend " + suffix, Slug: "backend-" + suffix}
	require.NoError(t, repo.Create(ctx, &first))

	dup := model.Specialization{Name: first.Name, Slug: first.Slug}
	err := repo.Create(ctx, &dup)
	require.Error(t, err)
	assert.True(t, common.IsUniqueViolation(err))

	require.NoError(t, repo.Delete(ctx, first.ID))

	again := model.Specialization{Name: first.Name, Slug: first.Slug}
	require.NoError(t, repo.Create(ctx, &again))
	assert.NotEqual(t, first.ID, again.ID)
}

func TestUserRepository_RecreateEmailAfterDelete(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	first := model.User{Email: email, PasswordHash: "x", Consent: true}
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	again := model.User{Email: email, PasswordHash: "y", Consent: true}
	require.NoError(t, repo.Create(ctx, &again))

	found, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, again.ID, found.ID)
}
