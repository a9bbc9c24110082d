package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleHR        = "hr"
	RoleCandidate = "candidate"
	RoleEmployee  = "employee"
)

// RoleNames lists every role seeded on startup.
var RoleNames = []string{RoleAdmin, RoleHR, RoleCandidate, RoleEmployee}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex:uniq_users_email,where:deleted_at IS NULL"`
	PasswordHash string         `json:"-" gorm:"not null"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Consent      bool           `json:"consent" gorm:"not null;default:false"`
	Roles        []Role         `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	Profile      *Profile       `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// RoleNames returns the names of the roles loaded on the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether any of the given roles is held by the user.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range u.Roles {
		for _, want := range roles {
			if r.Name == want {
				return true
			}
		}
	}
	return false
}

type Role struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
