package model

import "time"

// AnswerReview is advisory AI feedback on a TEXT answer. It never affects grading.
type AnswerReview struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	UserAnswerID uint       `json:"user_answer_id" gorm:"not null;index"`
	UserAnswer   UserAnswer `json:"-" gorm:"foreignKey:UserAnswerID;constraint:OnDelete:CASCADE;"`
	Model        string     `json:"model"`
	Feedback     string     `json:"feedback" gorm:"type:text;not null"`
	CreatedAt    time.Time  `json:"created_at"`
}
