package dto

import "time"

// AnswerOptionResponseDTO hides IsCorrect from test takers.
type AnswerOptionResponseDTO struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

type QuestionResponseDTO struct {
	ID          uint                      `json:"id"`
	TestID      uint                      `json:"test_id"`
	Content     string                    `json:"content"`
	Type        string                    `json:"type"`
	Score       int                       `json:"score"`
	OrderInTest int                       `json:"order_in_test"`
	Options     []AnswerOptionResponseDTO `json:"options,omitempty"`
}

type TestResponseDTO struct {
	ID              uint                     `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description,omitempty"`
	Duration        int                      `json:"duration"`
	IsPublished     bool                     `json:"is_published"`
	CreatedByID     uint                     `json:"created_by_id"`
	Specializations []SpecializationResponse `json:"specializations,omitempty"`
	Questions       []QuestionResponseDTO    `json:"questions,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// TestSummaryDTO is used for listing tests.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Duration      int       `json:"duration"`
	IsPublished   bool      `json:"is_published"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- DTOs for Test Attempts ---

// UserAnswerDTO is a single answer in a submission. Choice questions use SelectedOptionID or,
// for multi-select, SelectedOptionIDs. TEXT questions use TextAnswer.
type UserAnswerDTO struct {
	QuestionID        uint    `json:"question_id" binding:"required"`
	SelectedOptionID  *uint   `json:"selected_option_id"`
	SelectedOptionIDs []uint  `json:"selected_option_ids"`
	TextAnswer        *string `json:"text_answer"`
}

type TestAttemptSubmitDTO struct {
	Answers []UserAnswerDTO `json:"answers" binding:"dive"`
}

type AnswerResponseDTO struct {
	ID                uint    `json:"id"`
	QuestionID        uint    `json:"question_id"`
	QuestionContent   string  `json:"question_content,omitempty"`
	QuestionType      string  `json:"question_type,omitempty"`
	MaxScore          int     `json:"max_score"`
	SelectedOptionID  *uint   `json:"selected_option_id,omitempty"`
	SelectedOptionIDs []uint  `json:"selected_option_ids,omitempty"`
	TextAnswer        *string `json:"text_answer,omitempty"`
	IsCorrect         bool    `json:"is_correct"`
	ScoreAwarded      int     `json:"score_awarded"`
}

type TestAttemptDetailDTO struct {
	ID                 uint                `json:"id"`
	TestID             uint                `json:"test_id"`
	TestTitle          string              `json:"test_title,omitempty"`
	UserID             uint                `json:"user_id"`
	StartTime          time.Time           `json:"start_time"`
	EndTime            *time.Time          `json:"end_time,omitempty"`
	Status             string              `json:"status"`
	Score              *float64            `json:"score,omitempty"`
	Answers            []AnswerResponseDTO `json:"answers,omitempty"`
	SkippedQuestionIDs []uint              `json:"skipped_question_ids,omitempty"`
}

type TestAttemptSummaryDTO struct {
	ID        uint       `json:"id"`
	TestID    uint       `json:"test_id"`
	TestTitle string     `json:"test_title,omitempty"`
	UserID    uint       `json:"user_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    string     `json:"status"`
	Score     *float64   `json:"score,omitempty"`
}

type AttemptListQuery struct {
	PageQuery
	TestID *uint  `form:"test_id"`
	UserID *uint  `form:"user_id"`
	Status string `form:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED"`
}

type AttemptListResponse struct {
	Data       []TestAttemptSummaryDTO `json:"data"`
	Pagination Pagination              `json:"pagination"`
}

type AnswerReviewDTO struct {
	ID           uint      `json:"id"`
	UserAnswerID uint      `json:"user_answer_id"`
	QuestionID   uint      `json:"question_id"`
	Model        string    `json:"model"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}
