package repository

import (
	"context"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

// TestWithQuestionCount is a list row of tests.
type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	Update(ctx context.Context, test *model.Test) error
	UpdateWithSpecializations(ctx context.Context, test *model.Test, specs []model.Specialization) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error)
	FindAllWithQuestionCount(ctx context.Context, publishedOnly bool) ([]TestWithQuestionCount, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// Create inserts the test with its questions, options and specialization links in one transaction.
func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) Update(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Omit("Questions", "Specializations").Save(test).Error
}

// UpdateWithSpecializations saves the test metadata and its specialization set in one transaction.
func (r *testRepository) UpdateWithSpecializations(ctx context.Context, test *model.Test, specs []model.Specialization) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions", "Specializations").Save(test).Error; err != nil {
			return err
		}
		return tx.Model(test).Association("Specializations").Replace(specs)
	})
}

func (r *testRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Test{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "test", id)
	}
	return nil
}

func (r *testRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, wrapNotFound(err, "test", id)
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_test ASC, questions.id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_options.id ASC")
		}).
		Preload("Specializations").
		First(&test, id).Error
	if err != nil {
		return nil, wrapNotFound(err, "test", id)
	}
	return &test, nil
}

func (r *testRepository) FindAllWithQuestionCount(ctx context.Context, publishedOnly bool) ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	query := r.db.WithContext(ctx).Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id AND questions.deleted_at IS NULL) as question_count").
		Where("tests.deleted_at IS NULL")
	if publishedOnly {
		query = query.Where("tests.is_published = ?", true)
	}
	err := query.Order("tests.created_at DESC").Scan(&results).Error
	return results, err
}
