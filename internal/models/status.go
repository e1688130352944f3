// Package models - status.go defines the approval Status shared by organizations and
// requirements, and the pending → approved | rejected state machine they move through.
package models

// Status represents the approval state of an organization or requirement
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid returns true if the status is one of the known approval states
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible from s.
// Both approved and rejected are terminal from the client's point of view.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether an admin action may move an entity from s to next.
// Only pending entities can be decided; there is no path back to pending.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}
