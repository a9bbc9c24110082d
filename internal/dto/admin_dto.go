package dto

// AnswerOptionCreateDTO is one option of a choice question.
type AnswerOptionCreateDTO struct {
	Content   string `json:"content" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO is used within TestCreateDTO and for adding or replacing a single question.
type QuestionCreateDTO struct {
	Content     string                  `json:"content" binding:"required"`
	Type        string                  `json:"type" binding:"required,question_type"`
	Score       int                     `json:"score" binding:"min=0,max=1000"`
	OrderInTest int                     `json:"order_in_test" binding:"required,min=1"`
	Options     []AnswerOptionCreateDTO `json:"options" binding:"omitempty,dive"`
}

// TestCreateDTO is for admin/HR to create a test together with its questions.
type TestCreateDTO struct {
	Title             string              `json:"title" binding:"required,max=255"`
	Description       string              `json:"description,omitempty"`
	Duration          int                 `json:"duration" binding:"min=0,max=1440"`
	IsPublished       bool                `json:"is_published"`
	SpecializationIDs []uint              `json:"specialization_ids"`
	Questions         []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// TestUpdateDTO changes test metadata. Nil fields are left as they are.
type TestUpdateDTO struct {
	Title             *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description       *string `json:"description"`
	Duration          *int    `json:"duration" binding:"omitempty,min=0,max=1440"`
	IsPublished       *bool   `json:"is_published"`
	SpecializationIDs *[]uint `json:"specialization_ids"`
}
