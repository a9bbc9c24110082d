package model

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	UserID           uint            `json:"user_id" gorm:"not null;uniqueIndex"`
	Phone            string          `json:"phone,omitempty"`
	Location         string          `json:"location,omitempty"`
	Bio              string          `json:"bio,omitempty" gorm:"type:text"`
	Experience       string          `json:"experience,omitempty" gorm:"type:text"`
	Education        string          `json:"education,omitempty" gorm:"type:text"`
	SpecializationID *uint           `json:"specialization_id,omitempty" gorm:"index"`
	Specialization   *Specialization `json:"specialization,omitempty" gorm:"foreignKey:SpecializationID;constraint:OnDelete:SET NULL;"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}
