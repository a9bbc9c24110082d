package repository

import (
	"context"
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByNames(ctx context.Context, names []string) ([]model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// FindByNames fails with ErrValidation when any name is not a seeded role.
func (r *roleRepository) FindByNames(ctx context.Context, names []string) ([]model.Role, error) {
	unique := make(map[string]struct{}, len(names))
	for _, n := range names {
		unique[n] = struct{}{}
	}
	var roles []model.Role
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, err
	}
	if len(roles) != len(unique) {
		return nil, fmt.Errorf("unknown role in %v: %w", names, common.ErrValidation)
	}
	return roles, nil
}
