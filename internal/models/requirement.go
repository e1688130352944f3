// Package models - requirement.go defines the Requirement record (a resource an NGO needs)
// and the payloads used to post and edit one.
package models

// Requirement represents a resource need posted by an organization
type Requirement struct {
	ID              string    `json:"id"`
	NGOEmail        string    `json:"ngoEmail"`
	Item            string    `json:"item"`
	Quantity        string    `json:"quantity"`
	Description     string    `json:"description"`
	Status          Status    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       Timestamp `json:"createdAt"`
}

// NewRequirement is the payload for posting a requirement on behalf of an NGO
type NewRequirement struct {
	NGOEmail    string `json:"ngoEmail"`
	Item        string `json:"item"`
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
}

// RequirementUpdate carries the editable fields of a requirement.
// Empty fields are omitted so the remote service keeps the stored value.
type RequirementUpdate struct {
	Item        string `json:"item,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsEmpty returns true when the update would change nothing
func (u RequirementUpdate) IsEmpty() bool {
	return u.Item == "" && u.Quantity == "" && u.Description == ""
}
