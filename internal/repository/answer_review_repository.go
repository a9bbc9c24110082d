package repository

import (
	"context"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

// AnswerReviewRepository stores advisory reviews of TEXT answers. Rows are insert-only.
type AnswerReviewRepository interface {
	CreateBatch(ctx context.Context, reviews []model.AnswerReview) error
	FindByAttemptID(ctx context.Context, attemptID uint) ([]model.AnswerReview, error)
}

type answerReviewRepository struct {
	db *gorm.DB
}

func NewAnswerReviewRepository(db *gorm.DB) AnswerReviewRepository {
	return &answerReviewRepository{db: db}
}

func (r *answerReviewRepository) CreateBatch(ctx context.Context, reviews []model.AnswerReview) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("UserAnswer").Create(&reviews).Error
}

func (r *answerReviewRepository) FindByAttemptID(ctx context.Context, attemptID uint) ([]model.AnswerReview, error) {
	var reviews []model.AnswerReview
	err := r.db.WithContext(ctx).
		Joins("UserAnswer").
		Where("\"UserAnswer\".test_attempt_id = ?", attemptID).
		Order("answer_reviews.created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
