package model

import (
	"time"

	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptCompleted  AttemptStatus = "COMPLETED"
)

type TestAttempt struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TestID    uint           `json:"test_id" gorm:"not null;index"`
	Test      Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	User      *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	StartTime time.Time      `json:"start_time" gorm:"not null"`
	EndTime   *time.Time     `json:"end_time,omitempty"`
	Status    AttemptStatus  `json:"status" gorm:"type:varchar(16);not null;default:'IN_PROGRESS';index"`
	Score     *float64       `json:"score,omitempty"` // percentage, set on completion only
	Answers   []UserAnswer   `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
