package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID              uint             `gorm:"primarykey" json:"id"`
	Title           string           `json:"title" gorm:"not null"`
	Description     string           `json:"description,omitempty" gorm:"type:text"`
	Duration        int              `json:"duration"` // minutes, 0 means untimed
	IsPublished     bool             `json:"is_published" gorm:"not null;default:false;index"`
	CreatedByID     uint             `json:"created_by_id" gorm:"not null;index"`
	Questions       []Question       `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Specializations []Specialization `json:"specializations,omitempty" gorm:"many2many:test_specializations;"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TotalWeight is the maximum number of points the test can award.
func (t *Test) TotalWeight() int {
	total := 0
	for _, q := range t.Questions {
		total += q.Score
	}
	return total
}
