package repository

import (
	"context"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*model.Profile, error)
	Save(ctx context.Context, profile *model.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).Preload("Specialization").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, wrapNotFound(err, "profile of user", userID)
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit("Specialization").Save(profile).Error
}
