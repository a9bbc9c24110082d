package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

// AttemptFilter narrows attempt listings. Zero values mean "any".
type AttemptFilter struct {
	TestID *uint
	UserID *uint
	Status model.AttemptStatus
}

type TestAttemptRepository interface {
	Create(ctx context.Context, attempt *model.TestAttempt) error
	Complete(ctx context.Context, attempt *model.TestAttempt, answers []model.UserAnswer) error
	FindByID(ctx context.Context, id uint) (*model.TestAttempt, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.TestAttempt, error)
	FindInProgress(ctx context.Context, testID, userID uint) (*model.TestAttempt, error)
	FindAllByTestAndUser(ctx context.Context, testID *uint, userID uint) ([]model.TestAttempt, error)
	List(ctx context.Context, filter AttemptFilter, offset, limit int) ([]model.TestAttempt, int64, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(ctx context.Context, attempt *model.TestAttempt) error {
	return r.db.WithContext(ctx).Omit("Test", "User", "Answers").Create(attempt).Error
}

// Complete stores the answers and moves the attempt to COMPLETED in one transaction.
// The status guard makes a second concurrent submit fail with ErrConflict.
func (r *testAttemptRepository) Complete(ctx context.Context, attempt *model.TestAttempt, answers []model.UserAnswer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TestAttempt{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"status":     model.AttemptCompleted,
				"end_time":   attempt.EndTime,
				"score":      attempt.Score,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("attempt %d is no longer in progress: %w", attempt.ID, common.ErrConflict)
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].TestAttemptID = attempt.ID
		}
		return tx.Omit("Question").Create(&answers).Error
	})
}

func (r *testAttemptRepository) FindByID(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, wrapNotFound(err, "test attempt", id)
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Test.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_test ASC")
		}).
		Preload("Test.Questions.Options").
		Preload("User").
		Preload("Answers").
		First(&attempt, id).Error
	if err != nil {
		return nil, wrapNotFound(err, "test attempt", id)
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindInProgress(ctx context.Context, testID, userID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("test_id = ? AND user_id = ? AND status = ?", testID, userID, model.AttemptInProgress).
		Order("start_time DESC").
		First(&attempt).Error
	if err != nil {
		return nil, wrapNotFound(err, "in-progress attempt for test", testID)
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByTestAndUser(ctx context.Context, testID *uint, userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	query := r.db.WithContext(ctx).Preload("Test").Where("user_id = ?", userID)
	if testID != nil {
		query = query.Where("test_id = ?", *testID)
	}
	err := query.Order("start_time DESC").Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) List(ctx context.Context, filter AttemptFilter, offset, limit int) ([]model.TestAttempt, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.TestAttempt{})
	if filter.TestID != nil {
		query = query.Where("test_id = ?", *filter.TestID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.TestAttempt
	err := query.Preload("Test").Order("start_time DESC").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}
