// Package models - organization.go defines the Organization (NGO) record returned by the
// remote service and the registration payload used to create one.
package models

// Organization represents a registered NGO
type Organization struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	FullAddress    string `json:"fullAddress"`
	Category       string `json:"category"`
	RegistrationID string `json:"registrationId"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	Description    string `json:"description,omitempty"`
	Status         Status `json:"status"`
}

// OrganizationRegistration is the payload for registering a new NGO account.
// The created organization always starts pending.
type OrganizationRegistration struct {
	Name           string `json:"name"`
	City           string `json:"city"`
	FullAddress    string `json:"fullAddress"`
	Category       string `json:"category"`
	RegistrationID string `json:"registrationId"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// UserRegistration is the payload for registering a plain user account
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials are exchanged for an Actor on login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
