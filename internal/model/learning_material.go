package model

import (
	"time"

	"gorm.io/gorm"
)

type LearningMaterial struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Title            string          `json:"title" gorm:"not null"`
	Content          string          `json:"content" gorm:"type:text;not null"`
	SpecializationID *uint           `json:"specialization_id,omitempty" gorm:"index"`
	Specialization   *Specialization `json:"specialization,omitempty" gorm:"foreignKey:SpecializationID;constraint:OnDelete:SET NULL;"`
	IsPublished      bool            `json:"is_published" gorm:"not null;default:false;index"`
	CreatedByID      uint            `json:"created_by_id" gorm:"not null;index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}
