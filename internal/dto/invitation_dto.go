package dto

import "time"

type InvitationCreateDTO struct {
	Email          string `json:"email" binding:"omitempty,email"`
	ExpiresInHours int    `json:"expires_in_hours" binding:"omitempty,min=1,max=720"`
}

type InvitationResponseDTO struct {
	Token     string    `json:"token"`
	TestID    uint      `json:"test_id"`
	TestTitle string    `json:"test_title"`
	Email     string    `json:"email,omitempty"`
	Link      string    `json:"link"`
	QRCodePNG string    `json:"qr_code_png,omitempty"` // base64
	ExpiresAt time.Time `json:"expires_at"`
}
