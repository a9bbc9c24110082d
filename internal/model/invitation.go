package model

import (
	"time"

	"gorm.io/gorm"
)

type TestInvitation struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Token       string         `json:"token" gorm:"type:varchar(36);not null;uniqueIndex"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	CreatedByID uint           `json:"created_by_id" gorm:"not null"`
	Email       string         `json:"email,omitempty"`
	ExpiresAt   time.Time      `json:"expires_at" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *TestInvitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
