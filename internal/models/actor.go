// Package models - actor.go defines the authenticated Actor (the identity driving
// commands) and its role.
package models

// Role represents what an authenticated actor is allowed to do
type Role string

const (
	RoleUser  Role = "user"
	RoleNGO   Role = "ngo"
	RoleAdmin Role = "admin"
)

// Valid returns true if the role is known
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleNGO, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is the authenticated identity. Email is the unique identity key.
type Actor struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin returns true if the actor has the admin role
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// IsOrganization returns true if the actor logs in on behalf of an NGO
func (a *Actor) IsOrganization() bool {
	return a != nil && a.Role == RoleNGO
}
