package repository

import (
	"context"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"gorm.io/gorm"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.TestInvitation) error
	FindByToken(ctx context.Context, token string) (*model.TestInvitation, error)
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *model.TestInvitation) error {
	return r.db.WithContext(ctx).Omit("Test").Create(invitation).Error
}

func (r *invitationRepository) FindByToken(ctx context.Context, token string) (*model.TestInvitation, error) {
	var invitation model.TestInvitation
	err := r.db.WithContext(ctx).Preload("Test").Where("token = ?", token).First(&invitation).Error
	if err != nil {
		return nil, wrapNotFound(err, "invitation", token)
	}
	return &invitation, nil
}
