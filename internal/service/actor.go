package service

import "github.com/MaxKochergin/NNGP-sub002/internal/model"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Roles  []string
}

func (a Actor) HasRole(roles ...string) bool {
	for _, have := range a.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsStaff reports whether the actor manages content (admin or HR).
func (a Actor) IsStaff() bool {
	return a.HasRole(model.RoleAdmin, model.RoleHR)
}
