package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserAnswer is written once per question during submission and never updated.
type UserAnswer struct {
	ID                uint                      `gorm:"primarykey" json:"id"`
	TestAttemptID     uint                      `json:"test_attempt_id" gorm:"not null;index"`
	QuestionID        uint                      `json:"question_id" gorm:"not null;index"`
	Question          Question                  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptionID  *uint                     `json:"selected_option_id,omitempty"`
	SelectedOptionIDs datatypes.JSONSlice[uint] `json:"selected_option_ids,omitempty"`
	TextAnswer        *string                   `json:"text_answer,omitempty" gorm:"type:text"`
	IsCorrect         bool                      `json:"is_correct" gorm:"not null;default:false"`
	ScoreAwarded      int                       `json:"score_awarded" gorm:"not null;default:0"`
	CreatedAt         time.Time                 `json:"created_at"`
}
