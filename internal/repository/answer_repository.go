package repository

import (
	"context"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

// UserAnswerRepository reads stored answers. Answers are written only through TestAttemptRepository.Complete.
type UserAnswerRepository interface {
	FindByAttemptAndType(ctx context.Context, attemptID uint, qType model.QuestionType) ([]model.UserAnswer, error)
}

type userAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: db}
}

func (r *userAnswerRepository) FindByAttemptAndType(ctx context.Context, attemptID uint, qType model.QuestionType) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.db.WithContext(ctx).
		Joins("Question").
		Where("user_answers.test_attempt_id = ? AND \"Question\".type = ?", attemptID, qType).
		Order("\"Question\".order_in_test ASC").
		Find(&answers).Error
	return answers, err
}
