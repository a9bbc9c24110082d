package repository

import (
	"context"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

type MaterialFilter struct {
	SpecializationID *uint
	PublishedOnly    bool
}

type LearningMaterialRepository interface {
	Create(ctx context.Context, material *model.LearningMaterial) error
	Update(ctx context.Context, material *model.LearningMaterial) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.LearningMaterial, error)
	List(ctx context.Context, filter MaterialFilter, offset, limit int) ([]model.LearningMaterial, int64, error)
}

type learningMaterialRepository struct {
	db *gorm.DB
}

func NewLearningMaterialRepository(db *gorm.DB) LearningMaterialRepository {
	return &learningMaterialRepository{db: db}
}

func (r *learningMaterialRepository) Create(ctx context.Context, material *model.LearningMaterial) error {
	return r.db.WithContext(ctx).Omit("Specialization").Create(material).Error
}

func (r *learningMaterialRepository) Update(ctx context.Context, material *model.LearningMaterial) error {
	return r.db.WithContext(ctx).Omit("Specialization").Save(material).Error
}

func (r *learningMaterialRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.LearningMaterial{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "learning material", id)
	}
	return nil
}

func (r *learningMaterialRepository) FindByID(ctx context.Context, id uint) (*model.LearningMaterial, error) {
	var material model.LearningMaterial
	if err := r.db.WithContext(ctx).Preload("Specialization").First(&material, id).Error; err != nil {
		return nil, wrapNotFound(err, "learning material", id)
	}
	return &material, nil
}

func (r *learningMaterialRepository) List(ctx context.Context, filter MaterialFilter, offset, limit int) ([]model.LearningMaterial, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.LearningMaterial{})
	if filter.SpecializationID != nil {
		query = query.Where("specialization_id = ?", *filter.SpecializationID)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []model.LearningMaterial
	err := query.Preload("Specialization").Order("created_at DESC").Offset(offset).Limit(limit).Find(&materials).Error
	return materials, total, err
}
