package repository

import (
	"context"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

type SpecializationRepository interface {
	Create(ctx context.Context, spec *model.Specialization) error
	Update(ctx context.Context, spec *model.Specialization) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Specialization, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Specialization, error)
	FindAll(ctx context.Context) ([]model.Specialization, error)
}

type specializationRepository struct {
	db *gorm.DB
}

func NewSpecializationRepository(db *gorm.DB) SpecializationRepository {
	return &specializationRepository{db: db}
}

func (r *specializationRepository) Create(ctx context.Context, spec *model.Specialization) error {
	return r.db.WithContext(ctx).Create(spec).Error
}

func (r *specializationRepository) Update(ctx context.Context, spec *model.Specialization) error {
	return r.db.WithContext(ctx).Save(spec).Error
}

func (r *specializationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Specialization{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "specialization", id)
	}
	return nil
}

func (r *specializationRepository) FindByID(ctx context.Context, id uint) (*model.Specialization, error) {
	var spec model.Specialization
	if err := r.db.WithContext(ctx).First(&spec, id).Error; err != nil {
		return nil, wrapNotFound(err, "specialization", id)
	}
	return &spec, nil
}

// FindByIDs fails with ErrNotFound unless every id exists.
func (r *specializationRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Specialization, error) {
	if len(ids) == 0 {
		return []model.Specialization{}, nil
	}
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	var specs []model.Specialization
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&specs).Error; err != nil {
		return nil, err
	}
	if len(specs) != len(unique) {
		return nil, fmt.Errorf("specializations %v: %w", ids, common.ErrNotFound)
	}
	return specs, nil
}

func (r *specializationRepository) FindAll(ctx context.Context) ([]model.Specialization, error) {
	var specs []model.Specialization
	err := r.db.WithContext(ctx).Order("name ASC").Find(&specs).Error
	return specs, err
}
