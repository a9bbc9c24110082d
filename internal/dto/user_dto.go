package dto

import "time"

type UserResponse struct {
	ID        uint             `json:"id"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Consent   bool             `json:"consent"`
	Roles     []string         `json:"roles"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type CreateUserRequest struct {
	Email     string   `json:"email" binding:"required,email,max=255"`
	Password  string   `json:"password" binding:"required,min=8,max=72"`
	FirstName string   `json:"first_name" binding:"required,max=100"`
	LastName  string   `json:"last_name" binding:"required,max=100"`
	Consent   bool     `json:"consent"`
	Roles     []string `json:"roles" binding:"required,min=1,dive,role_name"`
}

// UpdateUserRequest leaves nil fields untouched. A non-nil Roles replaces the role set.
type UpdateUserRequest struct {
	FirstName *string  `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string  `json:"last_name" binding:"omitempty,max=100"`
	Consent   *bool    `json:"consent"`
	Roles     []string `json:"roles" binding:"omitempty,min=1,dive,role_name"`
}

type UserListQuery struct {
	PageQuery
	Role   string `form:"role" binding:"omitempty,role_name"`
	Search string `form:"search"`
}

type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type ProfileResponse struct {
	ID               uint                    `json:"id"`
	UserID           uint                    `json:"user_id"`
	Phone            string                  `json:"phone,omitempty"`
	Location         string                  `json:"location,omitempty"`
	Bio              string                  `json:"bio,omitempty"`
	Experience       string                  `json:"experience,omitempty"`
	Education        string                  `json:"education,omitempty"`
	SpecializationID *uint                   `json:"specialization_id,omitempty"`
	Specialization   *SpecializationResponse `json:"specialization,omitempty"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Phone            *string `json:"phone" binding:"omitempty,max=32"`
	Location         *string `json:"location" binding:"omitempty,max=255"`
	Bio              *string `json:"bio"`
	Experience       *string `json:"experience"`
	Education        *string `json:"education"`
	SpecializationID *uint   `json:"specialization_id"`
}
