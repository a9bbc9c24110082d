package model

import (
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionText           QuestionType = "TEXT"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultipleChoice, QuestionText:
		return true
	}
	return false
}

// IsChoice reports whether answers are picked from options.
func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

type Question struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	Type        QuestionType   `json:"type" gorm:"type:varchar(32);not null"`
	Score       int            `json:"score" gorm:"not null;default:1"`
	OrderInTest int            `json:"order_in_test" gorm:"not null"`
	Options     []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Option returns the option with the given id when it belongs to the question.
func (q *Question) Option(id uint) (AnswerOption, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return AnswerOption{}, false
}

// CorrectOptionIDs returns the ids of all options flagged correct.
func (q *Question) CorrectOptionIDs() []uint {
	var ids []uint
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

type AnswerOption struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
