package model

import (
	"time"

	"gorm.io/gorm"
)

// Specialization is a professional category grouping tests, materials and candidate profiles.
type Specialization struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex:uniq_specializations_name,where:deleted_at IS NULL"`
	Slug        string         `json:"slug" gorm:"not null;uniqueIndex:uniq_specializations_slug,where:deleted_at IS NULL"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
