package dto

import "time"

type CreateLearningMaterialRequest struct {
	Title            string `json:"title" binding:"required,max=255"`
	Content          string `json:"content" binding:"required"`
	SpecializationID *uint  `json:"specialization_id"`
	IsPublished      bool   `json:"is_published"`
}

type UpdateLearningMaterialRequest struct {
	Title            *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content          *string `json:"content" binding:"omitempty,min=1"`
	SpecializationID *uint   `json:"specialization_id"`
	IsPublished      *bool   `json:"is_published"`
}

type LearningMaterialQuery struct {
	PageQuery
	SpecializationID *uint `form:"specialization_id"`
}

type LearningMaterialResponse struct {
	ID               uint                    `json:"id"`
	Title            string                  `json:"title"`
	Content          string                  `json:"content"`
	SpecializationID *uint                   `json:"specialization_id,omitempty"`
	Specialization   *SpecializationResponse `json:"specialization,omitempty"`
	IsPublished      bool                    `json:"is_published"`
	CreatedByID      uint                    `json:"created_by_id"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

type LearningMaterialListResponse struct {
	Data       []LearningMaterialResponse `json:"data"`
	Pagination Pagination                 `json:"pagination"`
}
