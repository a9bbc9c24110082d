package dto

import "time"

type SpecializationRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
}

type SpecializationResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
