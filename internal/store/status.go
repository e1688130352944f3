// Package store holds the entity slices: the NGO slice, the requirement slice, and the
// conversation slice. Each slice exclusively owns its collections and one RequestStatus
// shared by its whole operation family. Every transition (begin, settle, fail) is a
// single critical section and listeners are notified after it has been applied.
package store

// RequestStatus tracks the in-flight state of a slice's operation family.
// An empty Error means no error.
type RequestStatus struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Failed returns true if the last settled command of the family failed
func (s RequestStatus) Failed() bool {
	return s.Error != ""
}

func beginStatus() RequestStatus { return RequestStatus{Loading: true} }

func settledStatus() RequestStatus { return RequestStatus{} }

func failedStatus(msg string) RequestStatus { return RequestStatus{Error: msg} }
